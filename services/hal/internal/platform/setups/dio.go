package setups

// RF switch DIO bits (LR11xx SetDioAsRfSwitch).
const (
	dio5 uint8 = 1 << iota
	dio6
	dio7
	dio8
)
