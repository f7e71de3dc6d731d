package battle

// EntityName identifies a pet or food species by its catalog key. The core
// never hard-codes a full roster; the handful of named constants below are
// the ones referenced directly by action/dispatch logic (§4.3, §4.4) rather
// than looked up through the catalog.
type EntityName string

const (
	NameZombieFly     EntityName = "zombie-fly"
	NameFly           EntityName = "fly"
	NameZombieCricket EntityName = "zombie-cricket"
	NameTiger         EntityName = "tiger"
	NameGarlic        EntityName = "garlic"
	NameCoconut       EntityName = "coconut"
	NameMelon         EntityName = "melon"
	NamePepper        EntityName = "pepper"
	NameMeatBone      EntityName = "meat-bone"
	NameSteak         EntityName = "steak"
	NameChili         EntityName = "chili"
	NameFortuneCookie EntityName = "fortune-cookie"
	NamePeanut        EntityName = "peanut"
	NameHoney         EntityName = "honey"
	NameBee           EntityName = "bee"
	NameRhino         EntityName = "rhino"
)
