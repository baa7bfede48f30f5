package waypoint_test

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
)

func Example() {
	ctx := context.Background()
	store := memory.NewStore()

	host, err := waypoint.New("1.0",
		waypoint.WithStore(store),
		waypoint.WithAppName("Demo"),
		waypoint.WithPages([]domain.Page{
			{Title: "Welcome", Description: "Thanks for installing Demo."},
			{Title: "Done", Description: "That's it."},
		}),
		waypoint.WithReduceMotionProbe(func() bool { return true }),
	)
	if err != nil {
		panic(err)
	}

	p, _ := host.Activate(ctx)
	r := &waypoint.Runner{Output: os.Stdout, Headless: true}
	if err := r.Run(ctx, p); err != nil {
		panic(err)
	}

	kind, _ := host.Check(ctx)
	fmt.Println("next:", kind)

	// Output:
	// (1/2) * Welcome
	// Thanks for installing Demo.
	//
	// (2/2) * Done
	// That's it.
	// next: none
}
