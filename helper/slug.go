package helper

import (
	"fmt"

	"mission_manager/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// GenerateUniqueMissionSlug appends a counter until the slug is free within
// the transaction's view of the table.
func GenerateUniqueMissionSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.LunarMission{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
