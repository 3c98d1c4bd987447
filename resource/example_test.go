package resource_test

import (
	"context"
	"fmt"

	"github.com/on-the-ground/resource_ive_go/resource"
)

func ExampleUse() {
	ctx := context.Background()

	conn := resource.Make(
		func(context.Context) (string, error) {
			fmt.Println("open conn")
			return "conn", nil
		},
		func(_ context.Context, v string) error {
			fmt.Printf("close %s\n", v)
			return nil
		},
	)
	session := resource.Bind(conn, func(c string) resource.Resource[string] {
		return resource.Make(
			func(context.Context) (string, error) {
				fmt.Printf("open session on %s\n", c)
				return "session", nil
			},
			func(_ context.Context, v string) error {
				fmt.Printf("close %s\n", v)
				return nil
			},
		)
	})

	_, _ = resource.Use(ctx, session, func(_ context.Context, s string) (struct{}, error) {
		fmt.Printf("query on %s\n", s)
		return struct{}{}, nil
	})

	// Output:
	// open conn
	// open session on conn
	// query on session
	// close session
	// close conn
}
