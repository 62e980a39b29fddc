package handler

import (
	"time"

	"atelier/internal/domain/entity"
)

// productView is the wire representation of a catalogue entry.
type productView struct {
	ID            string       `json:"id"`
	NameEN        string       `json:"name_en"`
	NameBG        string       `json:"name_bg"`
	DescriptionEN string       `json:"description_en"`
	DescriptionBG string       `json:"description_bg"`
	Category      string       `json:"category"`
	WoodType      string       `json:"wood_type"`
	Status        string       `json:"status"`
	Featured      bool         `json:"featured"`
	Images        []*imageView `json:"images"`
	Video         *videoView   `json:"video,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

type imageView struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
}

type videoView struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

func toProductView(p *entity.Product) *productView {
	if p == nil {
		return nil
	}

	images := make([]*imageView, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, &imageView{
			ID:           img.ID.String(),
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		})
	}

	view := &productView{
		ID:            p.ID.String(),
		NameEN:        p.NameEN,
		NameBG:        p.NameBG,
		DescriptionEN: p.DescriptionEN,
		DescriptionBG: p.DescriptionBG,
		Category:      p.Category.String(),
		WoodType:      p.WoodType.String(),
		Status:        p.Status.String(),
		Featured:      p.Featured,
		Images:        images,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if p.Video != nil {
		view.Video = &videoView{
			ID:  p.Video.ID.String(),
			URL: p.Video.URL,
		}
	}

	return view
}

func toProductViewList(products []*entity.Product) []*productView {
	views := make([]*productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	return views
}
