// Package geo сопоставляет координаты ближайшему городу из статической
// двуязычной таблицы. Таблица маленькая, полный перебор дешевле индексов.
package geo

import (
	"errors"
	"math"
)

var ErrNoCities = errors.New("city table is empty")

type City struct {
	ID     string  `json:"id"`
	NameRu string  `json:"name_ru"`
	NameUz string  `json:"name_uz"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

var cities = []City{
	{ID: "tashkent", NameRu: "Ташкент", NameUz: "Toshkent", Lat: 41.2995, Lon: 69.2401},
	{ID: "samarkand", NameRu: "Самарканд", NameUz: "Samarqand", Lat: 39.6542, Lon: 66.9597},
	{ID: "bukhara", NameRu: "Бухара", NameUz: "Buxoro", Lat: 39.7747, Lon: 64.4286},
	{ID: "andijan", NameRu: "Андижан", NameUz: "Andijon", Lat: 40.7821, Lon: 72.3442},
	{ID: "namangan", NameRu: "Наманган", NameUz: "Namangan", Lat: 40.9983, Lon: 71.6726},
	{ID: "fergana", NameRu: "Фергана", NameUz: "Farg'ona", Lat: 40.3834, Lon: 71.7870},
	{ID: "nukus", NameRu: "Нукус", NameUz: "Nukus", Lat: 42.4531, Lon: 59.6103},
	{ID: "urgench", NameRu: "Ургенч", NameUz: "Urganch", Lat: 41.5500, Lon: 60.6333},
	{ID: "karshi", NameRu: "Карши", NameUz: "Qarshi", Lat: 38.8606, Lon: 65.7891},
	{ID: "termez", NameRu: "Термез", NameUz: "Termiz", Lat: 37.2242, Lon: 67.2783},
	{ID: "jizzakh", NameRu: "Джизак", NameUz: "Jizzax", Lat: 40.1158, Lon: 67.8422},
	{ID: "navoi", NameRu: "Навои", NameUz: "Navoiy", Lat: 40.0844, Lon: 65.3792},
	{ID: "gulistan", NameRu: "Гулистан", NameUz: "Guliston", Lat: 40.4897, Lon: 68.7842},
	{ID: "kokand", NameRu: "Коканд", NameUz: "Qo'qon", Lat: 40.5286, Lon: 70.9425},
	{ID: "angren", NameRu: "Ангрен", NameUz: "Angren", Lat: 41.0167, Lon: 70.1436},
	{ID: "chirchik", NameRu: "Чирчик", NameUz: "Chirchiq", Lat: 41.4689, Lon: 69.5822},
}

const earthRadiusKm = 6371.0

// Nearest возвращает ближайший город и расстояние до него в километрах.
func Nearest(lat, lon float64) (City, float64, error) {
	if len(cities) == 0 {
		return City{}, 0, ErrNoCities
	}

	best := cities[0]
	bestDist := haversineKm(lat, lon, best.Lat, best.Lon)
	for _, city := range cities[1:] {
		if d := haversineKm(lat, lon, city.Lat, city.Lon); d < bestDist {
			best, bestDist = city, d
		}
	}
	return best, bestDist, nil
}

// All возвращает таблицу городов.
func All() []City {
	out := make([]City, len(cities))
	copy(out, cities)
	return out
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
