package cards

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"github.com/ziadkadry99/aidir/internal/catalog"
	"github.com/ziadkadry99/aidir/internal/i18n"
)

// Badge and rating colors.
const (
	colorPositive = "#10b981"
	colorCaution  = "#f59e0b"
	colorWarning  = "#ef4444"
)

// maxFaceTags is how many tags fit on a card's back face.
const maxFaceTags = 3

const backFaceTemplate = `<div class="card-back">
<button type="button" class="card-close" data-i18n-aria="card.close" aria-label="{{.CloseLabel}}">&times;</button>
<div class="card-badges"><span class="category-badge" data-category="{{.Category}}" data-i18n="{{.CategoryKey}}" style="{{.CategoryStyle}}">{{.CategoryName}}</span><span class="price-badge {{.PriceClass}}" data-i18n="{{.PriceKey}}" style="{{.PriceStyle}}">{{.PriceLabel}}</span></div>
<h3 class="card-back-title">{{.Title}}</h3>
<div class="card-rating"><span class="rating-value">{{.Rating}}</span><div class="rating-bar"><div class="rating-fill" style="{{.RatingStyle}}"></div></div></div>
<p class="card-description"{{if .DescriptionKey}} data-i18n="{{.DescriptionKey}}"{{end}}>{{.Description}}</p>
{{- if .Tags}}
<div class="card-tags">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</div>
{{- end}}
<div class="card-actions"><button type="button" class="card-details" data-tool-id="{{.ID}}" data-i18n="card.details">{{.DetailsLabel}}</button>
{{- if .Link}}<a class="card-action" href="{{.Link}}" target="_blank" rel="noopener noreferrer" data-i18n="card.open">{{.OpenLabel}}</a>{{end}}</div>
</div>`

const modalShellTemplate = `<div id="{{.ID}}" class="modal" role="dialog" aria-modal="true" aria-hidden="true" aria-labelledby="modal-title">
<div class="modal-overlay"></div>
<div class="modal-content">
<button type="button" class="modal-close" data-i18n-aria="modal.close" aria-label="{{.CloseLabel}}">&times;</button>
<div class="modal-body"></div>
</div>
</div>`

const modalBodyTemplate = `<article class="modal-detail" data-tool-id="{{.ID}}">
<header class="modal-header">
<h2 class="modal-title" id="modal-title">{{.Title}}</h2>
<div class="card-badges"><span class="category-badge" data-category="{{.Category}}" data-i18n="{{.CategoryKey}}" style="{{.CategoryStyle}}">{{.CategoryName}}</span><span class="price-badge {{.PriceClass}}" data-i18n="{{.PriceKey}}" style="{{.PriceStyle}}">{{.PriceLabel}}</span></div>
</header>
<div class="modal-rating"><span class="stars" aria-hidden="true">{{.Stars}}</span> <span class="rating-value">{{.Rating}}</span></div>
<p class="modal-description"{{if .DescriptionKey}} data-i18n="{{.DescriptionKey}}"{{end}}>{{.Description}}</p>
{{- if .Tags}}
<div class="modal-tags"><h3 data-i18n="modal.tags">{{.TagsLabel}}</h3><ul>{{range .Tags}}<li class="tag">{{.}}</li>{{end}}</ul></div>
{{- end}}
<footer class="modal-actions">
{{- if .Link}}<a class="modal-action" href="{{.Link}}" target="_blank" rel="noopener noreferrer" data-i18n="card.open">{{.OpenLabel}}</a>{{end}}
<button type="button" class="modal-close modal-close-action" data-i18n="modal.close">{{.CloseLabel}}</button>
</footer>
</article>`

var (
	backFaceTmpl   = template.Must(template.New("back").Parse(backFaceTemplate))
	modalShellTmpl = template.Must(template.New("modal").Parse(modalShellTemplate))
	modalBodyTmpl  = template.Must(template.New("modal-body").Parse(modalBodyTemplate))
)

// faceData is the view model shared by the back face and the modal body.
type faceData struct {
	ID             string
	Title          string
	Description    string
	DescriptionKey string
	Category       string
	CategoryKey    string
	CategoryName   string
	CategoryStyle  template.CSS
	PriceClass     string
	PriceKey       string
	PriceLabel     string
	PriceStyle     template.CSS
	Rating         string
	RatingStyle    template.CSS
	Stars          string
	Tags           []string
	Link           string

	CloseLabel   string
	DetailsLabel string
	OpenLabel    string
	TagsLabel    string
}

// newFaceData builds the view model of t in lang. maxTags < 0 keeps every
// tag.
func newFaceData(t catalog.Tool, lang i18n.Language, maxTags int) faceData {
	category := catalog.NormalizeCategory(string(t.Category))
	info := category.Info()
	rating := catalog.ClampRating(t.Rating)

	d := faceData{
		ID:            string(t.ID),
		Title:         t.Title,
		Description:   strings.TrimSpace(t.Description),
		Category:      string(category),
		CategoryKey:   "category." + string(category),
		CategoryName:  i18n.Lookup(lang, "category."+string(category)),
		CategoryStyle: template.CSS("background-color:" + info.Color),
		Rating:        strconv.FormatFloat(rating, 'f', 1, 64),
		RatingStyle:   template.CSS(fmt.Sprintf("width:%s%%;background-color:%s", ratingWidth(rating), ratingColor(rating))),
		Stars:         Stars(rating),
		Link:          t.Link,
		CloseLabel:    i18n.Lookup(lang, "card.close"),
		DetailsLabel:  i18n.Lookup(lang, "card.details"),
		OpenLabel:     i18n.Lookup(lang, "card.open"),
		TagsLabel:     i18n.Lookup(lang, "modal.tags"),
	}
	if d.Description == "" {
		d.DescriptionKey = "card.no_description"
		d.Description = i18n.Lookup(lang, d.DescriptionKey)
	}
	d.PriceStyle = PriceStyle(t.IsFree)
	if t.IsFree {
		d.PriceClass, d.PriceKey = "price-free", "card.free"
	} else {
		d.PriceClass, d.PriceKey = "price-premium", "card.premium"
	}
	d.PriceLabel = i18n.Lookup(lang, d.PriceKey)

	tags := t.Tags
	if maxTags >= 0 && len(tags) > maxTags {
		tags = tags[:maxTags]
	}
	d.Tags = tags
	return d
}

// ratingWidth is the bar width in percent, rating/5×100.
func ratingWidth(rating float64) string {
	w := math.Round(rating/5*100*10) / 10
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func ratingColor(rating float64) string {
	switch {
	case rating < 3:
		return colorWarning
	case rating < 4:
		return colorCaution
	default:
		return colorPositive
	}
}

// PriceStyle colors the price badge: positive for free tools, warning for
// premium ones.
func PriceStyle(isFree bool) template.CSS {
	if isFree {
		return template.CSS("background-color:" + colorPositive)
	}
	return template.CSS("background-color:" + colorWarning)
}

// RenderDetail renders the detail body shown in the modal for t, with every
// tag. Static pages embed it so the browser modal shows the same content.
func RenderDetail(t catalog.Tool, lang i18n.Language) (template.HTML, error) {
	var buf bytes.Buffer
	if err := modalBodyTmpl.Execute(&buf, newFaceData(t, lang, -1)); err != nil {
		return "", fmt.Errorf("rendering detail of %q: %w", t.ID, err)
	}
	return template.HTML(buf.String()), nil
}

// Stars renders the rating rounded to whole stars out of five.
func Stars(rating float64) string {
	n := int(math.Round(rating))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
