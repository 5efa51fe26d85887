package nutrition

// Source records which vision surface produced a candidate.
type Source string

const (
	SourceLabel     Source = "label"
	SourceWebEntity Source = "web_entity"
	SourceCrop      Source = "crop"
)

// DetectedLabel is one raw tag from the vision collaborator.
type DetectedLabel struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0..1
}

// Detections groups everything the vision collaborator returned for one image.
type Detections struct {
	Labels      []DetectedLabel `json:"labels"`
	WebEntities []DetectedLabel `json:"web_entities"`
	Crops       []DetectedLabel `json:"crops"`
}

// Candidate is a canonical food name proposed by the matcher from one label.
type Candidate struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`
}

// PortionedFood carries the gram weight assigned to one retained food.
type PortionedFood struct {
	Name  string  `json:"name"`
	Grams float64 `json:"grams"`
}

// Estimate is the final per-meal result handed to storage.
type Estimate struct {
	Foods         []string `json:"foods"`
	TotalProtein  float64  `json:"total_protein_g"`
	TotalCalories float64  `json:"total_calories"`
}
