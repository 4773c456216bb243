package items

// AllowList is the ordered set of item identities eligible for rescaling.
type AllowList struct {
	names []string
	index map[string]struct{}
}

// NewAllowList builds an AllowList from names. Duplicates are dropped, the
// first occurrence keeps its position.
func NewAllowList(names ...string) *AllowList {
	a := &AllowList{index: make(map[string]struct{}, len(names))}
	for _, n := range names {
		if _, ok := a.index[n]; ok {
			continue
		}
		a.index[n] = struct{}{}
		a.names = append(a.names, n)
	}
	return a
}

// Contains reports whether identity is allow-listed.
func (a *AllowList) Contains(identity string) bool {
	_, ok := a.index[identity]
	return ok
}

// Len returns the number of distinct identities.
func (a *AllowList) Len() int { return len(a.names) }

// Names returns the identities in list order.
func (a *AllowList) Names() []string {
	out := make([]string, len(a.names))
	copy(out, a.names)
	return out
}

// Eligible returns the document's identity and whether it is allow-listed.
// A document without an identity property is not eligible.
func (a *AllowList) Eligible(d *Document) (string, bool) {
	identity, ok := d.FindProperty(IdentityProp)
	if !ok {
		return "", false
	}
	return identity, a.Contains(identity)
}

// StackableItems lists every item whose stack size the mod raises.
var StackableItems = []string{
	"Alcohol",
	"Ammo",
	"Bandages",
	"Book",
	"BrokenToy",
	"CannedFood",
	"Cigarette",
	"Coffee",
	"Crayons",
	"DeadChildToy",
	"GunPowder",
	"HeaterFuel",
	"HerbalMeds",
	"HomeGrownTobacco",
	"JaredFood",
	"Joint", // may not carry a StackSize; reported as NoStackSize if so
	"LockPick",
	"Materials",
	"MedIngredients",
	"Meds",
	"Parts",
	"PistolShells",
	"Plants",
	"PlushDog",
	"RawFood",
	"RifleAmmo",
	"SawBlade",
	"ShotgunAmmo",
	"Snow",
	"StaleFood",
	"Sugar",
	"Tobacco",
	"Vegetables",
	"Water",
	"WeaponParts",
	"Wood",
	"ElectricParts",
}

// DefaultAllowList returns an AllowList over StackableItems.
func DefaultAllowList() *AllowList {
	return NewAllowList(StackableItems...)
}
