package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecosense/ecosense/internal/discovery"
	"github.com/ecosense/ecosense/internal/station"
)

func fixtureSnapshot() *station.Snapshot {
	return station.NewSnapshot([]*station.Station{
		{ID: "SAVEDNIPRO_0017", Name: "prospekt Dmytra Yavornytskoho, 91", City: "Dnipro"},
		{ID: "SAVEDNIPRO_1004", Name: "vulytsia Henerala Zhmachenka, 4", City: "Kyiv"},
		{ID: "SAVEDNIPRO_0500", Name: "vulytsia Soborna, 1", City: "Dnipro"},
		{ID: "SAVEDNIPRO_2200", Name: "vulytsia Zelena, 12", City: "Lviv"},
	})
}

func TestCities_SortedAndDeduplicated(t *testing.T) {
	cities := discovery.Cities(fixtureSnapshot())

	assert.Equal(t, []string{"Dnipro", "Kyiv", "Lviv"}, cities)
}

func TestRenderCities(t *testing.T) {
	body := discovery.RenderCities([]string{"Dnipro", "Kyiv"})

	assert.Equal(t, "Available cities:\nDnipro\nKyiv", body)
}

func TestCityStations_ExactMatch(t *testing.T) {
	stations := discovery.CityStations(fixtureSnapshot(), "Kyiv")

	require.Len(t, stations, 1)
	assert.Equal(t, "SAVEDNIPRO_1004", stations[0].ID)

	body := discovery.RenderCityStations("Kyiv", stations)
	assert.Equal(t, "Stations in Kyiv:\nSAVEDNIPRO_1004 - vulytsia Henerala Zhmachenka, 4", body)
}

func TestCityStations_SourceOrder(t *testing.T) {
	stations := discovery.CityStations(fixtureSnapshot(), "Dnipro")

	require.Len(t, stations, 2)
	assert.Equal(t, "SAVEDNIPRO_0017", stations[0].ID)
	assert.Equal(t, "SAVEDNIPRO_0500", stations[1].ID)
}

func TestRenderCityStations_UnknownCity(t *testing.T) {
	stations := discovery.CityStations(fixtureSnapshot(), "Nonexistent")

	body := discovery.RenderCityStations("Nonexistent", stations)
	assert.Equal(t, "No stations found in Nonexistent", body)
	assert.NotEmpty(t, body, "empty result must never render an empty body")
}

func TestCityStations_CaseSensitive(t *testing.T) {
	assert.Empty(t, discovery.CityStations(fixtureSnapshot(), "kyiv"))
}
