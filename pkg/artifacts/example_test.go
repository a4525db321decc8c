package artifacts_test

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/matzehuels/perfreport/pkg/artifacts"
)

func ExampleStore_Save() {
	dir, _ := os.MkdirTemp("", "perfreport-example")
	defer os.RemoveAll(dir)

	store, err := artifacts.Open(dir, artifacts.WithClock(func() time.Time {
		return time.UnixMilli(1700000000000)
	}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx := context.Background()
	id, err := store.Save(ctx, []byte(`{"requestedUrl":"https://example.com/"}`))
	if err != nil {
		fmt.Println(err)
		return
	}
	ids, _ := store.ListSaved(ctx)
	fmt.Println(id, ids)
	// Output: lhr-1700000000000 [lhr-1700000000000]
}
