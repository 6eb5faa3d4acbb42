package event

import (
	"context"
	"reflect"
	"testing"
)

type named string

func (n named) Name() string { return string(n) }

func TestMulti_FansOutInOrder(t *testing.T) {
	var order []string
	a := SinkFunc(func(_ context.Context, e Event) { order = append(order, "a:"+e.Name()) })
	b := SinkFunc(func(_ context.Context, e Event) { order = append(order, "b:"+e.Name()) })

	sink := Multi(a, nil, b)
	sink.Emit(context.Background(), named("x"))

	want := []string{"a:x", "b:x"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Emit(context.Background(), named("one"))
	r.Emit(context.Background(), named("two"))

	if got := r.Names(); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("names = %v", got)
	}
	events := r.Events()
	events[0] = named("changed")
	if r.Names()[0] != "one" {
		t.Fatal("Events must return a copy")
	}
}

func TestDiscard(t *testing.T) {
	Discard.Emit(context.Background(), named("ignored"))
}
