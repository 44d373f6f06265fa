package helper

import (
	"fmt"

	"github.com/yamamaalobaid/damascus-tour-guide/database"
	"github.com/yamamaalobaid/damascus-tour-guide/model"

	"github.com/gosimple/slug"
)

// GenerateUniquePlaceSlug slugifies the English name and appends a counter
// until the slug is free.
func GenerateUniquePlaceSlug(name string) string {
	base := slug.Make(name)
	candidate := base
	for i := 1; ; i++ {
		var count int64
		database.DB.Model(&model.Place{}).Where("slug = ?", candidate).Count(&count)
		if count == 0 {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
