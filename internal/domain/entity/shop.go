package entity

// Shop representa una tienda con sus categorías ya resueltas (vista desnormalizada).
type Shop struct {
	ID          string
	Name        string
	Description string
	Image       string
	FirstPrompt string // saludo inicial del asistente para esta tienda
	Categories  []Category
}
