package collection

import (
	"strings"
	"testing"
)

// Helper to create a map item with an id and optional label
func makeItem(id string, label ...string) map[string]any {
	item := map[string]any{"id": id}
	if len(label) > 0 {
		item["label"] = label[0]
	}
	return item
}

// Helper to create a collection pre-populated with items for the given ids
func makeCollection(t *testing.T, ids ...string) *Collection[map[string]any] {
	t.Helper()
	coll := New(Options[map[string]any]{})
	for _, id := range ids {
		if !coll.Add(makeItem(id)) {
			t.Fatalf("Add(%q) failed", id)
		}
	}
	return coll
}

func assertIDs(t *testing.T, coll *Collection[map[string]any], want ...string) {
	t.Helper()
	items := coll.Items()
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, id := range want {
		if items[i]["id"] != id {
			t.Errorf("position %d: expected id %q, got %v", i, id, items[i]["id"])
		}
	}
}

// ============================================================
// Tests for Add / AddMany
// ============================================================

func TestAdd_Basic(t *testing.T) {
	coll := New(Options[map[string]any]{})

	if !coll.Add(makeItem("a")) {
		t.Fatal("Add failed")
	}
	if coll.Size() != 1 {
		t.Errorf("expected size 1, got %d", coll.Size())
	}
	item, ok := coll.At(0)
	if !ok || item["id"] != "a" {
		t.Errorf("expected item a at position 0, got %v", item)
	}
}

func TestAdd_RejectsEmptyItem(t *testing.T) {
	coll := New(Options[map[string]any]{})

	if coll.Add(nil) {
		t.Error("expected Add(nil) to fail")
	}
	if coll.Add(map[string]any{}) {
		t.Error("expected Add of empty map to fail")
	}
	if coll.Size() != 0 {
		t.Errorf("expected size 0, got %d", coll.Size())
	}
}

func TestAdd_EnforcesUniqueness(t *testing.T) {
	coll := makeCollection(t, "a", "b")

	if coll.Add(makeItem("a")) {
		t.Error("expected duplicate id to be rejected")
	}
	if coll.Size() != 2 {
		t.Errorf("expected size 2, got %d", coll.Size())
	}
}

func TestAdd_AllowDuplicates(t *testing.T) {
	coll := New(Options[map[string]any]{AllowDuplicates: true})

	coll.Add(makeItem("a"))
	if !coll.Add(makeItem("a")) {
		t.Fatal("expected duplicate to be accepted")
	}
	if got := coll.IndexesBy("id", "a"); len(got) != 2 {
		t.Errorf("expected 2 positions for id a, got %v", got)
	}
}

func TestAdd_CapacityAndIsFull(t *testing.T) {
	coll := New(Options[map[string]any]{Capacity: 2})

	coll.Add(makeItem("a"))
	coll.Add(makeItem("b"))
	if !coll.IsFull() {
		t.Error("expected collection to be full")
	}
	if coll.Add(makeItem("c")) {
		t.Error("expected third add to fail")
	}

	coll.RemoveAt(0)
	if coll.IsFull() {
		t.Error("expected collection not to be full after removal")
	}
	if !coll.Add(makeItem("c")) {
		t.Error("expected add to succeed below capacity")
	}
}

func TestAdd_AppliesNormalize(t *testing.T) {
	coll := New(Options[map[string]any]{
		Normalize: func(item map[string]any) map[string]any {
			if s, ok := item["label"].(string); ok {
				item["label"] = strings.ToUpper(s)
			}
			return item
		},
	})

	coll.Add(makeItem("a", "alpha"))
	item, _ := coll.At(0)
	if item["label"] != "ALPHA" {
		t.Errorf("expected normalized label ALPHA, got %v", item["label"])
	}
}

func TestAdd_ComparatorKeepsOrder(t *testing.T) {
	coll := New(Options[map[string]any]{
		Less: func(a, b map[string]any) bool {
			return a["id"].(string) < b["id"].(string)
		},
	})

	coll.Add(makeItem("c"))
	coll.Add(makeItem("a"))
	coll.Add(makeItem("b"))
	assertIDs(t, coll, "a", "b", "c")
}

func TestAddMany(t *testing.T) {
	coll := New(Options[map[string]any]{})

	count := coll.AddMany([]map[string]any{
		makeItem("a"),
		nil,
		makeItem("b"),
		makeItem("a"), // duplicate
	})
	if count != 2 {
		t.Errorf("expected 2 added, got %d", count)
	}
	assertIDs(t, coll, "a", "b")
}

func TestAddMany_NilInput(t *testing.T) {
	coll := New(Options[map[string]any]{})

	if count := coll.AddMany(nil); count != 0 {
		t.Errorf("expected 0 added, got %d", count)
	}
}

func TestAddMany_SingleSortPass(t *testing.T) {
	coll := New(Options[map[string]any]{
		Less: func(a, b map[string]any) bool {
			return a["id"].(string) < b["id"].(string)
		},
	})

	coll.AddMany([]map[string]any{makeItem("c"), makeItem("a"), makeItem("b")})
	assertIDs(t, coll, "a", "b", "c")
}

// ============================================================
// Tests for RemoveAt / RemoveAllBy / RemoveByID
// ============================================================

func TestRemoveAt(t *testing.T) {
	coll := makeCollection(t, "a", "b", "c")

	if !coll.RemoveAt(1) {
		t.Fatal("RemoveAt failed")
	}
	assertIDs(t, coll, "a", "c")

	if coll.RemoveAt(5) {
		t.Error("expected out-of-range removal to fail")
	}
	if coll.RemoveAt(-1) {
		t.Error("expected negative-position removal to fail")
	}
}

func TestRemoveByID(t *testing.T) {
	coll := makeCollection(t, "a", "b")

	if !coll.RemoveByID("a") {
		t.Fatal("RemoveByID failed")
	}
	assertIDs(t, coll, "b")

	if coll.RemoveByID("nope") {
		t.Error("expected removal of unknown id to fail")
	}
	// Removing the same id twice must be a no-op the second time.
	if coll.RemoveByID("a") {
		t.Error("expected second removal to fail")
	}
}

func TestRemoveAllBy(t *testing.T) {
	coll := New(Options[map[string]any]{})
	coll.Add(map[string]any{"id": "a", "group": "x"})
	coll.Add(map[string]any{"id": "b", "group": "y"})
	coll.Add(map[string]any{"id": "c", "group": "x"})
	coll.Add(map[string]any{"id": "d", "group": "x"})

	if count := coll.RemoveAllBy("group", "x"); count != 3 {
		t.Errorf("expected 3 removed, got %d", count)
	}
	assertIDs(t, coll, "b")

	if count := coll.RemoveAllBy("group", "x"); count != 0 {
		t.Errorf("expected 0 removed, got %d", count)
	}
}

// ============================================================
// Tests for Patch
// ============================================================

func TestPatch(t *testing.T) {
	coll := New(Options[map[string]any]{})
	coll.Add(makeItem("a", "old"))
	coll.Add(makeItem("b", "keep"))

	if !coll.Patch(makeItem("a", "new")) {
		t.Fatal("Patch failed")
	}
	item, _ := coll.At(0)
	if item["label"] != "new" {
		t.Errorf("expected patched label, got %v", item["label"])
	}
	if coll.Size() != 2 {
		t.Errorf("expected size unchanged, got %d", coll.Size())
	}

	// Secondary indexes must reflect the new values.
	if _, ok := coll.FindBy("label", "old"); ok {
		t.Error("expected stale label lookup to miss")
	}
	if _, ok := coll.FindBy("label", "new"); !ok {
		t.Error("expected new label lookup to hit")
	}
}

func TestPatch_UnknownID(t *testing.T) {
	coll := makeCollection(t, "a")

	if coll.Patch(makeItem("zzz")) {
		t.Error("expected patch of unknown id to fail")
	}
}

func TestPatch_AllMatchingPositions(t *testing.T) {
	coll := New(Options[map[string]any]{AllowDuplicates: true})
	coll.Add(makeItem("a", "one"))
	coll.Add(makeItem("b"))
	coll.Add(makeItem("a", "two"))

	if !coll.Patch(makeItem("a", "patched")) {
		t.Fatal("Patch failed")
	}
	for _, pos := range []int{0, 2} {
		item, _ := coll.At(pos)
		if item["label"] != "patched" {
			t.Errorf("position %d: expected patched label, got %v", pos, item["label"])
		}
	}
}

// ============================================================
// Tests for Move / Sort
// ============================================================

func TestMove(t *testing.T) {
	coll := makeCollection(t, "a", "b", "c")

	if !coll.Move(0, 2) {
		t.Fatal("Move failed")
	}
	assertIDs(t, coll, "b", "c", "a")

	if !coll.Move(2, 0) {
		t.Fatal("Move back failed")
	}
	assertIDs(t, coll, "a", "b", "c")
}

func TestMove_Invalid(t *testing.T) {
	coll := makeCollection(t, "a", "b")

	if coll.Move(0, 0) {
		t.Error("expected move to same position to fail")
	}
	if coll.Move(0, 5) {
		t.Error("expected out-of-range target to fail")
	}
	if coll.Move(-1, 0) {
		t.Error("expected out-of-range source to fail")
	}
}

func TestMove_IndexesStayCorrect(t *testing.T) {
	coll := makeCollection(t, "a", "b", "c")
	coll.Move(0, 2)

	if pos := coll.IndexBy("id", "a"); pos != 2 {
		t.Errorf("expected id a at position 2, got %d", pos)
	}
	if pos := coll.IndexBy("id", "b"); pos != 0 {
		t.Errorf("expected id b at position 0, got %d", pos)
	}
}

func TestSort_Explicit(t *testing.T) {
	coll := makeCollection(t, "c", "a", "b")

	ok := coll.Sort(func(a, b map[string]any) bool {
		return a["id"].(string) < b["id"].(string)
	})
	if !ok {
		t.Fatal("Sort failed")
	}
	assertIDs(t, coll, "a", "b", "c")
}

func TestSort_NoComparator(t *testing.T) {
	coll := makeCollection(t, "b", "a")

	if coll.Sort(nil) {
		t.Error("expected Sort without comparator to report failure")
	}
	assertIDs(t, coll, "b", "a")
}

func TestSort_DoesNotRemapTagsOrActive(t *testing.T) {
	coll := makeCollection(t, "c", "a", "b")
	coll.ApplyTagAt("marked", 0) // item c
	coll.SetActiveIndex(0)       // item c

	coll.Sort(func(a, b map[string]any) bool {
		return a["id"].(string) < b["id"].(string)
	})
	assertIDs(t, coll, "a", "b", "c")

	// Tag and active pointer stay on numeric position 0, now item a.
	if got := coll.IndexesByTag("marked"); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected tag at position 0, got %v", got)
	}
	active, _ := coll.Active()
	if active["id"] != "a" {
		t.Errorf("expected active item a after sort, got %v", active["id"])
	}
}

// ============================================================
// Tests for Clear / lookup
// ============================================================

func TestClear(t *testing.T) {
	coll := makeCollection(t, "a", "b")
	coll.ConfigureTag("marked", TagConfig{Cardinality: 5})
	coll.ApplyTagAt("marked", 0)
	coll.SetActiveIndex(1)

	coll.Clear()

	if coll.Size() != 0 {
		t.Errorf("expected empty collection, got size %d", coll.Size())
	}
	if coll.ActiveIndex() != -1 {
		t.Error("expected active pointer unset")
	}
	if got := coll.IndexesByTag("marked"); len(got) != 0 {
		t.Errorf("expected empty tag membership, got %v", got)
	}
	// Tag configuration survives Clear.
	if cfg, ok := coll.TagConfigFor("marked"); !ok || cfg.Cardinality != 5 {
		t.Errorf("expected tag config to survive, got %v %v", cfg, ok)
	}
}

func TestFindBy_LazyIndexAfterMutations(t *testing.T) {
	coll := New(Options[map[string]any]{})
	coll.Add(map[string]any{"id": "a", "group": "x"})
	coll.Add(map[string]any{"id": "b", "group": "y"})

	// Populate the group index, then mutate and re-query.
	if _, ok := coll.FindBy("group", "y"); !ok {
		t.Fatal("expected group y hit")
	}
	coll.RemoveAt(0)
	if pos := coll.IndexBy("group", "y"); pos != 0 {
		t.Errorf("expected group y at position 0 after removal, got %d", pos)
	}
	if pos := coll.IndexBy("group", "x"); pos != -1 {
		t.Errorf("expected group x to miss, got %d", pos)
	}
}

func TestItems_DefensiveCopy(t *testing.T) {
	coll := makeCollection(t, "a", "b")

	items := coll.Items()
	items[0] = makeItem("mutated")

	item, _ := coll.At(0)
	if item["id"] != "a" {
		t.Error("expected internal sequence to be unaffected by caller mutation")
	}
}

func TestAt_OutOfRange(t *testing.T) {
	coll := makeCollection(t, "a")

	if _, ok := coll.At(1); ok {
		t.Error("expected out-of-range At to miss")
	}
	if _, ok := coll.At(-1); ok {
		t.Error("expected negative At to miss")
	}
}

func TestCustomIDProperty(t *testing.T) {
	coll := New(Options[map[string]any]{IDProperty: "uid"})
	coll.Add(map[string]any{"uid": "u1"})
	coll.Add(map[string]any{"uid": "u2"})

	if coll.Add(map[string]any{"uid": "u1"}) {
		t.Error("expected duplicate uid to be rejected")
	}
	if _, ok := coll.ByID("u2"); !ok {
		t.Error("expected ByID to resolve via uid")
	}
}

func TestFieldProperty_Structs(t *testing.T) {
	type track struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	coll := New(Options[track]{Property: FieldProperty[track]()})

	coll.Add(track{ID: "t1", Title: "One"})
	coll.Add(track{ID: "t2", Title: "Two"})

	if coll.Add(track{ID: "t1", Title: "Dup"}) {
		t.Error("expected duplicate struct id to be rejected")
	}
	item, ok := coll.FindBy("title", "Two")
	if !ok || item.ID != "t2" {
		t.Errorf("expected t2 by title, got %v %v", item, ok)
	}
}

func TestNew_PanicsOnSearchWithoutContent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for Search without Content")
		}
	}()
	New(Options[map[string]any]{Search: newStubAdapter()})
}
