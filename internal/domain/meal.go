package domain

import (
	"context"
	"time"
)

// PromotionThreshold é o número de curtidas que move uma refeição candidata para o catálogo.
const PromotionThreshold = 10

// StatusUpcoming é o único status possível na tabela upcoming_meals.
const StatusUpcoming = "upcoming"

// Meal representa uma refeição publicada no catálogo.
type Meal struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Cuisine          string    `json:"cuisine"`
	Image            string    `json:"image"`
	Ingredients      []string  `json:"ingredients"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	PrepTime         string    `json:"prep_time"`
	DistributorName  string    `json:"distributor_name"`
	DistributorEmail string    `json:"distributor_email"`
	Likes            int       `json:"likes"`
	Rating           float64   `json:"rating"`
	ReviewsCount     int       `json:"reviews_count"`
	PostedAt         time.Time `json:"posted_at"`
}

// UpcomingMeal é uma refeição candidata na fila de votação.
type UpcomingMeal struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Category         string    `json:"category"`
	Cuisine          string    `json:"cuisine"`
	Image            string    `json:"image"`
	Ingredients      []string  `json:"ingredients"`
	Description      string    `json:"description"`
	Price            float64   `json:"price"`
	PrepTime         string    `json:"prep_time"`
	DistributorName  string    `json:"distributor_name"`
	DistributorEmail string    `json:"distributor_email"`
	Status           string    `json:"status"`
	Likes            int       `json:"likes"`
	LikedBy          []string  `json:"liked_by"`
	Rating           float64   `json:"rating"`
	ReviewsCount     int       `json:"reviews_count"`
	PostedAt         time.Time `json:"posted_at"`
}

// HasVoter indica se o e-mail já consta em LikedBy.
func (m UpcomingMeal) HasVoter(email string) bool {
	for _, voter := range m.LikedBy {
		if voter == email {
			return true
		}
	}
	return false
}

// ToPublished monta o registro do catálogo a partir dos campos descritivos do candidato.
// ID, LikedBy e Status são descartados; contadores zerados; PostedAt recebe o instante da publicação.
func (m UpcomingMeal) ToPublished(now time.Time) Meal {
	ingredients := make([]string, len(m.Ingredients))
	copy(ingredients, m.Ingredients)

	return Meal{
		Title:            m.Title,
		Category:         m.Category,
		Cuisine:          m.Cuisine,
		Image:            m.Image,
		Ingredients:      ingredients,
		Description:      m.Description,
		Price:            m.Price,
		PrepTime:         m.PrepTime,
		DistributorName:  m.DistributorName,
		DistributorEmail: m.DistributorEmail,
		Likes:            0,
		Rating:           0,
		ReviewsCount:     0,
		PostedAt:         now,
	}
}

// MealSubmission é o payload de criação de refeição (candidata ou publicada).
// Campos ponteiro distinguem "ausente/null" de valor zero.
type MealSubmission struct {
	Title            *string  `json:"title"`
	Category         *string  `json:"category"`
	Cuisine          *string  `json:"cuisine"`
	Image            *string  `json:"image"`
	Ingredients      []string `json:"ingredients"`
	Description      *string  `json:"description"`
	Price            *float64 `json:"price"`
	PrepTime         *string  `json:"prep_time"`
	DistributorName  *string  `json:"distributor_name"`
	DistributorEmail *string  `json:"distributor_email"`
}

// IsComplete indica se todos os campos obrigatórios estão presentes e não nulos.
func (s MealSubmission) IsComplete() bool {
	return s.Title != nil && s.Category != nil && s.Cuisine != nil && s.Image != nil &&
		s.Ingredients != nil && s.Description != nil && s.Price != nil && s.PrepTime != nil &&
		s.DistributorName != nil && s.DistributorEmail != nil
}

// IsEmpty indica que nenhum campo foi informado (usado em atualizações parciais).
func (s MealSubmission) IsEmpty() bool {
	return s.Title == nil && s.Category == nil && s.Cuisine == nil && s.Image == nil &&
		s.Ingredients == nil && s.Description == nil && s.Price == nil && s.PrepTime == nil &&
		s.DistributorName == nil && s.DistributorEmail == nil
}

// ToUpcoming converte uma submissão completa em candidato. Chamar apenas após IsComplete.
func (s MealSubmission) ToUpcoming() UpcomingMeal {
	return UpcomingMeal{
		Title:            *s.Title,
		Category:         *s.Category,
		Cuisine:          *s.Cuisine,
		Image:            *s.Image,
		Ingredients:      s.Ingredients,
		Description:      *s.Description,
		Price:            *s.Price,
		PrepTime:         *s.PrepTime,
		DistributorName:  *s.DistributorName,
		DistributorEmail: *s.DistributorEmail,
	}
}

// ToMeal converte uma submissão completa em refeição do catálogo. Chamar apenas após IsComplete.
func (s MealSubmission) ToMeal() Meal {
	return Meal{
		Title:            *s.Title,
		Category:         *s.Category,
		Cuisine:          *s.Cuisine,
		Image:            *s.Image,
		Ingredients:      s.Ingredients,
		Description:      *s.Description,
		Price:            *s.Price,
		PrepTime:         *s.PrepTime,
		DistributorName:  *s.DistributorName,
		DistributorEmail: *s.DistributorEmail,
	}
}

// VoteResult é o resultado de RegisterVote.
type VoteResult struct {
	Published    bool
	UpdatedLikes int
}

// MealFilter define os parâmetros de busca e paginação do catálogo (page começa em 0).
// Offset é preenchido pelo serviço a partir de Page e Limit.
type MealFilter struct {
	Page     int
	Limit    int
	Offset   int
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// MealPage é uma página do catálogo.
type MealPage struct {
	Meals   []Meal `json:"meals"`
	HasMore bool   `json:"hasMore"`
}

// MealSortedPage é uma página do catálogo ordenada por curtidas e avaliações (page começa em 1).
type MealSortedPage struct {
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
	Data       []Meal `json:"data"`
}

// UpcomingMealPage é uma página de candidatos ordenados por curtidas (page começa em 1).
type UpcomingMealPage struct {
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
	Data       []UpcomingMeal `json:"data"`
}

// MealRepository define o contrato de persistência do catálogo publicado.
type MealRepository interface {
	Save(ctx context.Context, meal Meal) (Meal, error)
	FindByID(ctx context.Context, id string) (Meal, error)
	FindAll(ctx context.Context, filter MealFilter) ([]Meal, int, error)
	FindByDistributor(ctx context.Context, email string) ([]Meal, error)
	FindSorted(ctx context.Context, offset, limit int) ([]Meal, int, error)
	// Update aplica apenas os campos não nulos de patch. Sem linha alterada => NotFoundError.
	Update(ctx context.Context, id string, patch MealSubmission) error
	Delete(ctx context.Context, id string) (int64, error)
	// Like incrementa as curtidas e retorna o novo total.
	Like(ctx context.Context, id string) (int, error)
}

// UpcomingMealRepository define o contrato de persistência das refeições candidatas.
type UpcomingMealRepository interface {
	Save(ctx context.Context, meal UpcomingMeal) (UpcomingMeal, error)
	FindByID(ctx context.Context, id string) (UpcomingMeal, error)
	FindAll(ctx context.Context) ([]UpcomingMeal, error)
	FindSortedByLikes(ctx context.Context, offset, limit int) ([]UpcomingMeal, int, error)
	Delete(ctx context.Context, id string) (int64, error)
	// AddVote incrementa likes e adiciona o e-mail em liked_by numa única operação condicional.
	// Retorna ErrVoteNotApplied se o candidato não existe ou o e-mail já votou.
	AddVote(ctx context.Context, id, email string) (UpcomingMeal, error)
	// Publish remove o candidato e insere a refeição no catálogo na mesma transação.
	// Retorna ErrCandidateGone se o candidato já não existe.
	Publish(ctx context.Context, candidateID string, meal Meal) (Meal, error)
}
