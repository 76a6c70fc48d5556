package model

// Category is a high-level disease grouping derived from cause_name.
// The set is closed: every cause maps to exactly one of these five values.
type Category string

const (
	CategoryNCD              Category = "Non-communicable diseases"
	CategoryCommunicable     Category = "Communicable diseases"
	CategoryInjuries         Category = "Injuries"
	CategoryMaternalNeonatal Category = "Maternal & Neonatal"
	CategoryUnclassified     Category = "Unclassified"
)

// Categories returns all defined categories.
func Categories() []Category {
	return []Category{
		CategoryNCD,
		CategoryCommunicable,
		CategoryInjuries,
		CategoryMaternalNeonatal,
		CategoryUnclassified,
	}
}
