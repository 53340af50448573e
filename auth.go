package mt

// AuthMethods is a bitmask of authentication mechanisms.
type AuthMethods uint32

const (
	LegacyPasswd AuthMethods = 1 << iota
	SRP
	FirstSRP
)
