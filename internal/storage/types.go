package storage

// Report summarises a generation run.
type Report struct {
	Seed      int64          `json:"seed"`
	Region    RegionData     `json:"region"`
	Chunks    int            `json:"chunks"`
	Materials map[string]int `json:"materials"`
	Clouds    []PlacedData   `json:"clouds"`
	ElapsedMS int64          `json:"elapsed_ms"`
}

// RegionData is a half-open range of chunk coordinates.
type RegionData struct {
	MinX int `json:"min_x"`
	MinY int `json:"min_y"`
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// PlacedData is the serializable form of a placed structure.
type PlacedData struct {
	Template string `json:"template"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}
