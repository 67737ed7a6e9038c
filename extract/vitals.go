package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/prospects/models"
)

// VitalsSelector matches the value cells of the biography block.
const VitalsSelector = ".col-xs-8.fac-lbl-dark"

// vitalsFields names the biography cells in page order. age and youth_team
// are read to keep positions aligned but are not part of the output.
var vitalsFields = []string{
	"birthday",
	"age",
	"birth_place",
	"birth_country",
	"youth_team",
	"position",
	"height",
	"weight",
	"shot_handedness",
}

var vitalsMatcher = cascadia.MustCompile(VitalsSelector)

// Vitals extracts the biography block of a profile page. name and playerURL
// are the roster values retained as name_ and player_url_.
func Vitals(doc *goquery.Document, name, playerURL string) (models.PlayerVitals, error) {
	cells := doc.FindMatcher(vitalsMatcher).Nodes
	if len(cells) < len(vitalsFields) {
		return models.PlayerVitals{}, models.NewParseError(
			models.ErrCodeInsufficientVitals,
			fmt.Sprintf("found %d of %d biography fields", len(cells), len(vitalsFields)),
		)
	}

	raw := make(map[string]*string, len(vitalsFields))
	for i, field := range vitalsFields {
		raw[field] = clean(nodeText(cells[i]))
	}

	return models.PlayerVitals{
		Birthday:       ParseBirthday(raw["birthday"]),
		BirthPlace:     raw["birth_place"],
		BirthCountry:   raw["birth_country"],
		Position:       raw["position"],
		Height:         ParseHeight(raw["height"]),
		Weight:         ParseWeight(raw["weight"]),
		ShotHandedness: raw["shot_handedness"],
		Name:           name,
		PlayerURL:      playerURL,
	}, nil
}
