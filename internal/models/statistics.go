package models

// TypeCount is the number of accidents of one type
type TypeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DatasetStatistics summarises the full, unfiltered accident dataset
type DatasetStatistics struct {
	Total           int         `json:"total"`
	Day             int         `json:"day"`
	Night           int         `json:"night"`
	CenterLat       float64     `json:"center_lat"`
	CenterLon       float64     `json:"center_lon"`
	MaxDamage       int64       `json:"max_damage"`
	TotalFatalities int         `json:"total_fatalities"`
	TotalSerious    int         `json:"total_serious"`
	TotalMinor      int         `json:"total_minor"`
	Types           []TypeCount `json:"types"`
}
