package rendezvous_test

import (
	"fmt"
	"time"

	"github.com/amp-labs/rendezvous/rendezvous"
)

// ExampleNew demonstrates manual Future/Promise creation and a blocking wait.
func ExampleNew() {
	f, p := rendezvous.New[int]()

	go func() {
		time.Sleep(10 * time.Millisecond)
		p.Success(100)
	}()

	r := f.AwaitSafe()

	value, err := r.Get()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Result: %d\n", value)
	// Output: Result: 100
}

// ExampleSpawn demonstrates running work on a fresh goroutine.
func ExampleSpawn() {
	f := rendezvous.Spawn(func() (string, error) {
		return "Hello, Future!", nil
	})

	r := f.AwaitSafe()

	value, err := r.Get()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(value)
	// Output: Hello, Future!
}

// ExampleMap demonstrates transforming a Future's success value.
func ExampleMap() {
	intFuture := rendezvous.Value[int](42)

	doubled := rendezvous.Map(intFuture, func(n int) int { return n * 2 })

	r := doubled.AwaitSafe()

	value, err := r.Get()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Result: %d\n", value)
	// Output: Result: 84
}

// ExampleJoin3 demonstrates joining three independent futures into a tuple.
func ExampleJoin3() {
	fa := rendezvous.Value[int](1)
	fb := rendezvous.Value[string]("two")
	fc := rendezvous.Value[bool](true)

	r := rendezvous.Join3(fa, fb, fc).AwaitSafe()

	value, err := r.Get()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("%d %s %v\n", value.First(), value.Second(), value.Third())
	// Output: 1 two true
}

// ExampleCollect demonstrates turning a slice of futures into a future of
// their ordered successes.
func ExampleCollect() {
	futures := []*rendezvous.Future[int]{
		rendezvous.Value[int](1),
		rendezvous.Value[int](2),
		rendezvous.Value[int](3),
	}

	r := rendezvous.Collect(futures).AwaitSafe()

	value, err := r.Get()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Println(value)
	// Output: [1 2 3]
}
