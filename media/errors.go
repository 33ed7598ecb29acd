package media

import "fmt"

// crossReferenceNotOwned reports that a Load/Batch reference points at an
// entity outside this MediaSet's arena (invariants 1–2). It is a plain
// error rather than one of arinc665's typed kinds because it can only ever
// be a caller-side model-construction bug, never something surfaced from
// decoded bytes.
func crossReferenceNotOwned(kind string, ref interface{ nodeName() string }) error {
	name := "<nil>"
	if ref != nil {
		name = ref.nodeName()
	}
	return fmt.Errorf("arinc665: %s reference %q belongs to a different media set", kind, name)
}
