// Package catalog содержит статический справочник специализаций.
// Идентификаторы совпадают с specialization_id в объявлениях и профилях.
package catalog

import "strings"

type Specialization struct {
	ID     string `json:"id"`
	NameRu string `json:"name_ru"`
	NameUz string `json:"name_uz"`
	Icon   string `json:"icon"`
}

const defaultIcon = "briefcase"

var specializations = map[string]Specialization{
	"construction": {ID: "construction", NameRu: "Стройка и ремонт", NameUz: "Qurilish va ta'mirlash", Icon: "hammer"},
	"loading":      {ID: "loading", NameRu: "Погрузка и переезды", NameUz: "Yuk tashish", Icon: "truck"},
	"cleaning":     {ID: "cleaning", NameRu: "Уборка", NameUz: "Tozalash", Icon: "broom"},
	"agriculture":  {ID: "agriculture", NameRu: "Сельское хозяйство", NameUz: "Qishloq xo'jaligi", Icon: "wheat"},
	"plumbing":     {ID: "plumbing", NameRu: "Сантехника", NameUz: "Santexnika", Icon: "wrench"},
	"electrics":    {ID: "electrics", NameRu: "Электрика", NameUz: "Elektrika", Icon: "zap"},
	"welding":      {ID: "welding", NameRu: "Сварка", NameUz: "Payvandlash", Icon: "flame"},
	"carpentry":    {ID: "carpentry", NameRu: "Столярные работы", NameUz: "Duradgorlik", Icon: "saw"},
	"painting":     {ID: "painting", NameRu: "Малярные работы", NameUz: "Bo'yoqchilik", Icon: "paint-roller"},
	"gardening":    {ID: "gardening", NameRu: "Сад и огород", NameUz: "Bog'dorchilik", Icon: "sprout"},
	"cooking":      {ID: "cooking", NameRu: "Кухня и общепит", NameUz: "Oshpazlik", Icon: "chef-hat"},
	"driving":      {ID: "driving", NameRu: "Водители", NameUz: "Haydovchilar", Icon: "car"},
	"sales":        {ID: "sales", NameRu: "Продажи", NameUz: "Savdo", Icon: "shopping-bag"},
	"it":           {ID: "it", NameRu: "IT и интернет", NameUz: "IT va internet", Icon: "laptop"},
	"education":    {ID: "education", NameRu: "Образование", NameUz: "Ta'lim", Icon: "book"},
	"medicine":     {ID: "medicine", NameRu: "Медицина", NameUz: "Tibbiyot", Icon: "stethoscope"},
	"security":     {ID: "security", NameRu: "Охрана", NameUz: "Qo'riqlash", Icon: "shield"},
	"other":        {ID: "other", NameRu: "Другое", NameUz: "Boshqa", Icon: defaultIcon},
}

// Resolve возвращает специализацию по id. Для неизвестного id - фолбэк:
// Title-cased id как имя и иконка по умолчанию, чтобы витрина не падала
// на данных, записанных до появления справочника.
func Resolve(id string) Specialization {
	if spec, ok := specializations[id]; ok {
		return spec
	}

	name := titleCase(id)
	return Specialization{ID: id, NameRu: name, NameUz: name, Icon: defaultIcon}
}

// Known сообщает, есть ли id в справочнике.
func Known(id string) bool {
	_, ok := specializations[id]
	return ok
}

// All возвращает копию справочника для выдачи клиенту.
func All() []Specialization {
	list := make([]Specialization, 0, len(specializations))
	for _, spec := range specializations {
		list = append(list, spec)
	}
	return list
}

func titleCase(id string) string {
	cleaned := strings.NewReplacer("_", " ", "-", " ").Replace(id)
	words := strings.Fields(cleaned)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
