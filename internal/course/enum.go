package course

type Category string

const (
	CategoryProgramming Category = "programming"
	CategoryDesign      Category = "design"
	CategoryBusiness    Category = "business"
)

var AllCategories = []Category{
	CategoryProgramming,
	CategoryDesign,
	CategoryBusiness,
}

func (c Category) IsValid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}
