package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if _, ok = table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct class failed")
	}
	if _, ok = table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong class should fail")
	}
	if c, ok := table.ClassOf(h); !ok || c != 1 {
		t.Fatalf("ClassOf = %d, %v", c, ok)
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
	if _, ok = table.Get(h); ok {
		t.Fatal("Expected Get to fail after Remove")
	}
	if _, ok = table.Remove(h); ok {
		t.Fatal("Expected second Remove to fail")
	}
}

func TestTable_ZeroHandle(t *testing.T) {
	table := NewTable()
	if _, ok := table.Get(0); ok {
		t.Fatal("handle 0 must be invalid")
	}
	if _, ok := table.Remove(0); ok {
		t.Fatal("handle 0 must not be removable")
	}
	if _, ok := table.Get(99); ok {
		t.Fatal("out of range handle must be invalid")
	}
}

func TestTable_ReusesFreedSlots(t *testing.T) {
	table := NewTable()
	a := table.Insert(1, "a")
	b := table.Insert(1, "b")
	table.Remove(a)

	c := table.Insert(1, "c")
	if c != a {
		t.Fatalf("Expected freed handle %d to be reused, got %d", a, c)
	}
	if v, _ := table.Get(b); v != "b" {
		t.Fatal("unrelated handle disturbed")
	}
	if table.Len() != 2 {
		t.Fatalf("Expected Len() == 2, got %d", table.Len())
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, "test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventDropped {
		t.Fatal("Expected EventDropped")
	}

	table.Unsubscribe(obs)
	table.Insert(1, "test2")
	if len(obs.events) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_Each(t *testing.T) {
	table := NewTable()
	table.Insert(1, "a")
	dead := table.Insert(2, "b")
	table.Insert(1, "c")
	table.Remove(dead)

	var seen []string
	table.Each(func(_ Handle, _ Class, v any) bool {
		seen = append(seen, v.(string))
		return true
	})
	if len(seen) != 2 || seen[0] != "a" || seen[1] != "c" {
		t.Fatalf("Each visited %v", seen)
	}

	count := 0
	table.Each(func(Handle, Class, any) bool {
		count++
		return false
	})
	if count != 1 {
		t.Fatalf("Each should stop early, visited %d", count)
	}
}

func TestTable_Clear(t *testing.T) {
	table := NewTable()

	table.Insert(1, "a")
	table.Insert(1, "b")
	table.Insert(1, "c")

	if table.Len() != 3 {
		t.Fatal("Expected Len() == 3")
	}

	table.Clear()

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Clear")
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	table.Insert(1, "a")
	table.Insert(1, d)

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Expected Close to drop live values once, got %d", d.count)
	}
	if !table.Closed() {
		t.Fatal("Closed() should report true")
	}

	if h := table.Insert(1, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
	if err := table.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if d.count != 1 {
		t.Fatal("second Close dropped again")
	}
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, d)
	table.Remove(h)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}

// selfRemover removes its own handle from Drop, the way an owning
// wrapper releases itself when the table drops it.
type selfRemover struct {
	table *Table
	h     Handle
	drops int
}

func (s *selfRemover) Drop() {
	s.drops++
	s.table.Remove(s.h)
}

func TestTable_ReentrantDrop(t *testing.T) {
	table := NewTable()
	s := &selfRemover{table: table}
	s.h = table.Insert(1, s)

	table.Remove(s.h)
	if s.drops != 1 {
		t.Fatalf("Expected one drop, got %d", s.drops)
	}
	if table.Len() != 0 {
		t.Fatalf("Expected empty table, got %d", table.Len())
	}
}
