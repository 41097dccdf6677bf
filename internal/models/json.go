package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Хелперы нормализации jsonb-полей. Старые пути записи сохраняли массивы
// то как JSON-массив, то как JSON-строку с массивом внутри, поэтому чтение
// всегда идет через эти функции и нигде не дублируется по вызывающим.

// StringList приводит jsonb-значение к []string.
// Массив проходит как есть; строка парсится как вложенный JSON;
// все остальное (null, мусор, ошибка парсинга) дает пустой срез.
func StringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &list); err == nil {
			return list
		}
	}

	return []string{}
}

// ObjectList приводит jsonb-значение к []map[string]any по тем же правилам.
func ObjectList(raw datatypes.JSON) []map[string]any {
	if len(raw) == 0 {
		return []map[string]any{}
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var nested string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if err := json.Unmarshal([]byte(nested), &list); err == nil {
			return list
		}
	}

	return []map[string]any{}
}

// ToJSON сериализует значение в datatypes.JSON для пути записи.
func ToJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
