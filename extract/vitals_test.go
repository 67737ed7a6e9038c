package extract

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/prospects/models"
	"github.com/use-agent/prospects/testutil"
)

func TestVitals_Fixture(t *testing.T) {
	doc := testutil.Document(t, testutil.ProfileHTML)

	v, err := Vitals(doc, "Riley Sample", testutil.ProfileURL)
	require.NoError(t, err)

	require.NotNil(t, v.Birthday)
	assert.Equal(t, time.Date(2001, time.March, 14, 0, 0, 0, 0, time.UTC), *v.Birthday)
	assert.Equal(t, "Halifax, NS", *v.BirthPlace)
	assert.Equal(t, "Canada", *v.BirthCountry)
	assert.Equal(t, "C", *v.Position)
	assert.Equal(t, 71, *v.Height)
	assert.Equal(t, 185, *v.Weight)
	assert.Equal(t, "L", *v.ShotHandedness)
	assert.Equal(t, "Riley Sample", v.Name)
	assert.Equal(t, testutil.ProfileURL, v.PlayerURL)
}

func TestVitals_PlaceholdersBecomeMissing(t *testing.T) {
	page := strings.NewReplacer(
		`>L<`, `>-<`,
		`185lbs`, `-`,
		` Canada `, ``,
	).Replace(testutil.ProfileHTML)

	v, err := Vitals(testutil.Document(t, page), "Riley Sample", testutil.ProfileURL)
	require.NoError(t, err)
	assert.Nil(t, v.ShotHandedness)
	assert.Nil(t, v.Weight)
	assert.Nil(t, v.BirthCountry)
	assert.NotNil(t, v.Height)
}

func TestVitals_UnparseableValuesDegrade(t *testing.T) {
	page := strings.NewReplacer(
		`Mar 14, 2001`, `sometime in spring`,
		`5' 11"`, `180 cm`,
	).Replace(testutil.ProfileHTML)

	v, err := Vitals(testutil.Document(t, page), "Riley Sample", testutil.ProfileURL)
	require.NoError(t, err)
	assert.Nil(t, v.Birthday)
	assert.Nil(t, v.Height)
	assert.Equal(t, 185, *v.Weight)
}

func TestVitals_InsufficientFields(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < len(vitalsFields)-1; i++ {
		b.WriteString(`<div class="col-xs-8 fac-lbl-dark">x</div>`)
	}
	b.WriteString("</body></html>")

	_, err := Vitals(testutil.Document(t, b.String()), "Riley Sample", testutil.ProfileURL)
	require.Error(t, err)
	assert.Equal(t, models.ErrCodeInsufficientVitals, models.ErrorCode(err))
	assert.Contains(t, err.Error(), "found 8 of 9")
}

func TestVitals_SelectorNeedsBothClasses(t *testing.T) {
	page := strings.ReplaceAll(testutil.ProfileHTML, "col-xs-8 fac-lbl-dark", "col-xs-8")

	_, err := Vitals(testutil.Document(t, page), "Riley Sample", testutil.ProfileURL)
	assert.Equal(t, models.ErrCodeInsufficientVitals, models.ErrorCode(err))
}
