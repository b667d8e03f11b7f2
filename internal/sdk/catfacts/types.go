package catfacts

// CatFact 为一条猫咪事实。
type CatFact struct {
	Fact   string `json:"fact"`
	Length int    `json:"length"`
}

// FactsPage 为 /facts 的分页响应（只声明用到的字段）。
type FactsPage struct {
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	Total       int       `json:"total"`
	Data        []CatFact `json:"data"`
}

// Breed 为一条猫咪品种记录。
type Breed struct {
	Breed   string `json:"breed"`
	Country string `json:"country"`
	Origin  string `json:"origin"`
	Coat    string `json:"coat"`
	Pattern string `json:"pattern"`
}

// BreedsPage 为 /breeds 的分页响应（只声明用到的字段）。
type BreedsPage struct {
	CurrentPage int     `json:"current_page"`
	LastPage    int     `json:"last_page"`
	Total       int     `json:"total"`
	Data        []Breed `json:"data"`
}

// factQuery 为 /fact 的查询参数。
type factQuery struct {
	MaxLength int `json:"max_length,omitempty" validate:"omitempty,min=1"`
}

// pageQuery 为分页端点的查询参数。
type pageQuery struct {
	Page  int `json:"page" validate:"required,min=1"`
	Limit int `json:"limit" validate:"required,min=1,max=100"`
}
