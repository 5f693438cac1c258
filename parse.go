package climate

import (
	"encoding/xml"
	"strings"
)

// The World Bank API answers with a <list> of per-GCM datums:
//
//	<list>
//	  <domain.web.AnnualGcmDatum>
//	    <gcm>bccr_bcm2_0</gcm>
//	    <variable>pr</variable>
//	    <fromYear>1980</fromYear>
//	    <toYear>1999</toYear>
//	    <annualData><double>987.23</double></annualData>
//	  </domain.web.AnnualGcmDatum>
//	  ...
//	</list>
type annualGcmData struct {
	Datums []annualGcmDatum `xml:"domain.web.AnnualGcmDatum"`
}

type annualGcmDatum struct {
	GCM        string     `xml:"gcm"`
	Variable   string     `xml:"variable"`
	FromYear   int        `xml:"fromYear"`
	ToYear     int        `xml:"toYear"`
	AnnualData annualData `xml:"annualData"`
}

type annualData struct {
	Double float64 `xml:"double"`
}

// parseAnnualGcmData extracts the GCM datums from a response body.
// An unknown country code is reported by the service as a plain-text body
// rather than an error status.
func parseAnnualGcmData(body string) ([]annualGcmDatum, error) {
	if strings.HasPrefix(body, "Invalid country code") {
		return nil, ErrCountryNotRecognized
	}

	var data annualGcmData
	if err := xml.Unmarshal([]byte(body), &data); err != nil {
		return nil, &ParseError{Err: err}
	}
	return data.Datums, nil
}

// rainfallByYear averages the datums across GCMs, keyed by their start year.
func rainfallByYear(datums []annualGcmDatum) map[int]float64 {
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, d := range datums {
		sums[d.FromYear] += d.AnnualData.Double
		counts[d.FromYear]++
	}

	byYear := make(map[int]float64, len(sums))
	for year, sum := range sums {
		byYear[year] = sum / float64(counts[year])
	}
	return byYear
}

// averageRainfall is the mean over every GCM datum, zero when there are none.
func averageRainfall(datums []annualGcmDatum) float64 {
	if len(datums) == 0 {
		return 0
	}
	var sum float64
	for _, d := range datums {
		sum += d.AnnualData.Double
	}
	return sum / float64(len(datums))
}
