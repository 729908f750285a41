package collection

// propertyIndex caches, per property name, a mapping from property value to
// the ascending list of positions holding that value. Entries are populated
// on read and dropped (not patched) when a structural mutation would make
// them stale; the identity-attribute entry is rebuilt eagerly by the engine
// after every mutation.
type propertyIndex struct {
	entries map[string]map[any][]int
}

func newPropertyIndex() *propertyIndex {
	return &propertyIndex{entries: make(map[string]map[any][]int)}
}

func (px *propertyIndex) get(property string) (map[any][]int, bool) {
	entry, ok := px.entries[property]
	return entry, ok
}

func (px *propertyIndex) put(property string, entry map[any][]int) {
	px.entries[property] = entry
}

// append records that value occupies pos. Only valid for appends at the end
// of the sequence, which keeps each position list ascending without sorting.
func (px *propertyIndex) append(property string, value any, pos int) {
	entry, ok := px.entries[property]
	if !ok {
		return
	}
	entry[value] = append(entry[value], pos)
}

func (px *propertyIndex) invalidate(property string) {
	delete(px.entries, property)
}

// invalidateExcept drops every cached entry except the one named.
func (px *propertyIndex) invalidateExcept(keep string) {
	for property := range px.entries {
		if property != keep {
			delete(px.entries, property)
		}
	}
}

func (px *propertyIndex) reset() {
	clear(px.entries)
}
