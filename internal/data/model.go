package data

import (
	"time"

	"github.com/cinelog/movieapp/internal/biz"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// movieDocument is the layout of one document in the movies collection.
type movieDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Year      *int32        `bson:"year,omitempty"`
	Genre     *string       `bson:"genre,omitempty"`
	Watched   bool          `bson:"watched"`
	Rating    *float64      `bson:"rating,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d *movieDocument) toBiz() *biz.Movie {
	return &biz.Movie{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Year:      d.Year,
		Genre:     d.Genre,
		Watched:   d.Watched,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// movieRecord represents the movies table
type movieRecord struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Title     string    `gorm:"not null;size:255"`
	Year      *int32    `gorm:"column:year"`
	Genre     *string   `gorm:"size:100"`
	Watched   bool      `gorm:"not null;default:false;index:idx_movies_watched"`
	Rating    *float64  `gorm:"index:idx_movies_rating"`
	CreatedAt time.Time `gorm:"not null;index:idx_movies_created_at"`
}

// TableName overrides the table name
func (movieRecord) TableName() string {
	return "movies"
}

func (r *movieRecord) toBiz() *biz.Movie {
	return &biz.Movie{
		ID:        r.ID,
		Title:     r.Title,
		Year:      r.Year,
		Genre:     r.Genre,
		Watched:   r.Watched,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
