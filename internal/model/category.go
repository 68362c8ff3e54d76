package model

// Category groups tasks under a unique name. Categories are created lazily
// the first time a task references them and are never deleted.
type Category struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt string `json:"created_at"`
	Tasks     []Task `gorm:"foreignKey:CategoryID" json:"-"`
}
