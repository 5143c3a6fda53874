package types

// DegreeLevel is the closed set of recognized education levels.
type DegreeLevel string

// Recognized degree levels, ordered HighSchool < Associate < Bachelor < Master < Doctorate.
// Other is outside the ordering and never satisfies a minimum-level requirement.
const (
	DegreeHighSchool DegreeLevel = "high_school"
	DegreeAssociate  DegreeLevel = "associate"
	DegreeBachelor   DegreeLevel = "bachelor"
	DegreeMaster     DegreeLevel = "master"
	DegreeDoctorate  DegreeLevel = "doctorate"
	DegreeOther      DegreeLevel = "other"
)

var degreeRank = map[DegreeLevel]int{
	DegreeHighSchool: 1,
	DegreeAssociate:  2,
	DegreeBachelor:   3,
	DegreeMaster:     4,
	DegreeDoctorate:  5,
}

// Rank returns the position of the level in the total order.
// Other and unrecognized values rank 0.
func (d DegreeLevel) Rank() int {
	return degreeRank[d]
}

// Valid reports whether d is one of the recognized enum values, including Other.
func (d DegreeLevel) Valid() bool {
	return d == DegreeOther || degreeRank[d] > 0
}
