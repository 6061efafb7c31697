package domain

// Category is read-only reference data for the creation wizard. ParentID
// supports a hierarchy; current data is flat.
type Category struct {
	ID       string  `gorm:"column:id;type:varchar(64);primaryKey" json:"id"`
	Name     string  `gorm:"column:name;not null" json:"name"`
	Slug     string  `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	ParentID *string `gorm:"column:parent_id;type:varchar(64)" json:"parent_id"`
}

func (Category) TableName() string {
	return "categories"
}
