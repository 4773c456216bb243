package items

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// ScaleFactor multiplies every eligible stack size.
	ScaleFactor = 100
	// displayUnit is how many stack-size units the game shows as one item.
	displayUnit = 256
)

// ApplyScale multiplies every StackSize property of the document by
// ScaleFactor in memory. The returned record describes the last one in
// document order. It reports false, with no error, when the document has no
// StackSize. Nothing is modified unless every value scales without overflow.
func (d *Document) ApplyScale(identity string) (ChangeRecord, bool, error) {
	props := d.properties(StackSizeProp)
	if len(props) == 0 {
		return ChangeRecord{}, false, nil
	}

	olds := make([]int64, len(props))
	for i, prop := range props {
		raw := propValue(prop)
		old, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ChangeRecord{}, false, fmt.Errorf("%w: %s %q for %s", ErrInvalidMagnitude, StackSizeProp, raw, identity)
		}
		if old > math.MaxInt64/ScaleFactor || old < math.MinInt64/ScaleFactor {
			return ChangeRecord{}, false, fmt.Errorf("%w: %s %d for %s overflows when scaled", ErrInvalidMagnitude, StackSizeProp, old, identity)
		}
		olds[i] = old
	}

	var rec ChangeRecord
	for i, prop := range props {
		scaled := olds[i] * ScaleFactor
		setPropValue(prop, strconv.FormatInt(scaled, 10))
		rec = ChangeRecord{
			Identity: identity,
			Original: olds[i],
			Modified: scaled,
			Note:     Note(olds[i], scaled),
		}
	}
	return rec, true, nil
}

// Note renders a change in in-game display units, e.g. "4 -> 400".
func Note(old, scaled int64) string {
	return fmt.Sprintf("%d -> %d", floorDiv(old, displayUnit), floorDiv(scaled, displayUnit))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
