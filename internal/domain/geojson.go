package domain

const (
	GeoJSONFeatureCollection = "FeatureCollection"
	GeoJSONFeature           = "Feature"
	GeometryPoint            = "Point"
	GeometryPolygon          = "Polygon"
)

// FeatureCollection - экспорт карты местности в GeoJSON
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry.Coordinates is LonLat for points and [][]LonLat for polygons.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{Type: GeoJSONFeatureCollection, Features: []Feature{}}
}

func (fc *FeatureCollection) Add(f Feature) {
	fc.Features = append(fc.Features, f)
}

func PointFeature(p LonLat, props map[string]any) Feature {
	return Feature{
		Type:       GeoJSONFeature,
		Geometry:   Geometry{Type: GeometryPoint, Coordinates: p},
		Properties: props,
	}
}

// SquareFeature builds a closed polygon of half-width delta degrees around center.
func SquareFeature(center LonLat, delta float64, props map[string]any) Feature {
	ring := []LonLat{
		{center[0] - delta, center[1] - delta},
		{center[0] + delta, center[1] - delta},
		{center[0] + delta, center[1] + delta},
		{center[0] - delta, center[1] + delta},
		{center[0] - delta, center[1] - delta},
	}
	return Feature{
		Type:       GeoJSONFeature,
		Geometry:   Geometry{Type: GeometryPolygon, Coordinates: [][]LonLat{ring}},
		Properties: props,
	}
}
