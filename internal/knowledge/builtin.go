package knowledge

import "github.com/ppiankov/chronomap/internal/model"

// builtinEntities is the core reference catalog: major political and
// geographic entities with well-documented existence periods. Open-ended
// periods run to the configured horizon maximum and are capped at load.
func builtinEntities(horizonMax int) []model.HistoricalEntity {
	yr := model.MustYearRange
	return []model.HistoricalEntity{
		// Russia and successors
		{Name: "USSR", CanonicalName: "Soviet Union", EntityType: "country", ValidRange: yr(1922, 1991),
			AlternativeNames: []string{"Soviet Union", "U.S.S.R.", "Union of Soviet Socialist Republics", "CCCP"}},
		{Name: "Russian Empire", CanonicalName: "Russian Empire", EntityType: "country", ValidRange: yr(1721, 1917),
			AlternativeNames: []string{"Imperial Russia", "Tsarist Russia"}},
		{Name: "Russian Federation", CanonicalName: "Russia", EntityType: "country", ValidRange: yr(1991, horizonMax),
			AlternativeNames: []string{"Russia", "Russian Federation"}},

		// Germany
		{Name: "Weimar Republic", CanonicalName: "Weimar Republic", EntityType: "country", ValidRange: yr(1919, 1933),
			AlternativeNames: []string{"German Republic"}},
		{Name: "Nazi Germany", CanonicalName: "Nazi Germany", EntityType: "country", ValidRange: yr(1933, 1945),
			AlternativeNames: []string{"Third Reich", "Greater German Reich", "Deutsches Reich"}},
		{Name: "East Germany", CanonicalName: "East Germany", EntityType: "country", ValidRange: yr(1949, 1990),
			AlternativeNames: []string{"German Democratic Republic", "GDR", "DDR"}},
		{Name: "West Germany", CanonicalName: "West Germany", EntityType: "country", ValidRange: yr(1949, 1990),
			AlternativeNames: []string{"Federal Republic of Germany", "FRG", "BRD"}},
		{Name: "Germany", CanonicalName: "Germany", EntityType: "country", ValidRange: yr(1990, horizonMax),
			AlternativeNames: []string{"Deutschland"}},

		// Central and Eastern Europe
		{Name: "Yugoslavia", CanonicalName: "Yugoslavia", EntityType: "country", ValidRange: yr(1918, 1992),
			AlternativeNames: []string{"Kingdom of Yugoslavia", "Socialist Federal Republic of Yugoslavia", "SFRY"}},
		{Name: "Czechoslovakia", CanonicalName: "Czechoslovakia", EntityType: "country", ValidRange: yr(1918, 1993),
			AlternativeNames: []string{"Czecho-Slovakia", "CSSR"}},
		{Name: "Czech Republic", CanonicalName: "Czech Republic", EntityType: "country", ValidRange: yr(1993, horizonMax),
			AlternativeNames: []string{"Czechia"}},
		{Name: "Slovakia", CanonicalName: "Slovakia", EntityType: "country", ValidRange: yr(1993, horizonMax),
			AlternativeNames: []string{"Slovak Republic"}},
		{Name: "Austria-Hungary", CanonicalName: "Austro-Hungarian Empire", EntityType: "empire", ValidRange: yr(1867, 1918),
			AlternativeNames: []string{"Austro-Hungarian Empire", "Dual Monarchy"}},
		{Name: "Prussia", CanonicalName: "Kingdom of Prussia", EntityType: "country", ValidRange: yr(1701, 1918),
			AlternativeNames: []string{"Kingdom of Prussia"}},

		// Middle East
		{Name: "Ottoman Empire", CanonicalName: "Ottoman Empire", EntityType: "empire", ValidRange: yr(1299, 1922),
			AlternativeNames: []string{"Turkish Empire"}},
		{Name: "Palestine", CanonicalName: "British Mandate of Palestine", EntityType: "territory", ValidRange: yr(1920, 1948),
			AlternativeNames: []string{"Mandatory Palestine"}},
		{Name: "Israel", CanonicalName: "Israel", EntityType: "country", ValidRange: yr(1948, horizonMax),
			AlternativeNames: []string{"State of Israel"}},
		{Name: "Persia", CanonicalName: "Persia", EntityType: "country", ValidRange: yr(1501, 1935),
			AlternativeNames: []string{"Persian Empire"}},
		{Name: "Iran", CanonicalName: "Iran", EntityType: "country", ValidRange: yr(1935, horizonMax),
			AlternativeNames: []string{"Islamic Republic of Iran"}},

		// Cities with dated renames
		{Name: "Constantinople", CanonicalName: "Constantinople", EntityType: "city", ValidRange: yr(1000, 1930),
			AlternativeNames: []string{"Konstantinopel"}},
		{Name: "Istanbul", CanonicalName: "Istanbul", EntityType: "city", ValidRange: yr(1930, horizonMax)},
		{Name: "Leningrad", CanonicalName: "Leningrad", EntityType: "city", ValidRange: yr(1924, 1991)},
		{Name: "Petrograd", CanonicalName: "Petrograd", EntityType: "city", ValidRange: yr(1914, 1924)},
		{Name: "Saint Petersburg", CanonicalName: "Saint Petersburg", EntityType: "city", ValidRange: yr(1703, 1914),
			AlternativeNames: []string{"St. Petersburg", "St Petersburg"}},
		{Name: "Danzig", CanonicalName: "Free City of Danzig", EntityType: "city", ValidRange: yr(1920, 1939),
			AlternativeNames: []string{"Free City of Danzig"}},
		{Name: "Bombay", CanonicalName: "Bombay", EntityType: "city", ValidRange: yr(1661, 1995)},
		{Name: "Mumbai", CanonicalName: "Mumbai", EntityType: "city", ValidRange: yr(1995, horizonMax)},

		// Colonial-era territories
		{Name: "British India", CanonicalName: "British Raj", EntityType: "territory", ValidRange: yr(1858, 1947),
			AlternativeNames: []string{"British Raj", "Indian Empire"}},
		{Name: "India", CanonicalName: "India", EntityType: "country", ValidRange: yr(1947, horizonMax),
			AlternativeNames: []string{"Republic of India"}},
		{Name: "Rhodesia", CanonicalName: "Rhodesia", EntityType: "territory", ValidRange: yr(1965, 1979)},
		{Name: "Zimbabwe", CanonicalName: "Zimbabwe", EntityType: "country", ValidRange: yr(1980, horizonMax)},
		{Name: "Zaire", CanonicalName: "Zaire", EntityType: "country", ValidRange: yr(1971, 1997)},
		{Name: "Siam", CanonicalName: "Siam", EntityType: "country", ValidRange: yr(1238, 1939),
			AlternativeNames: []string{"Kingdom of Siam"}},
		{Name: "Thailand", CanonicalName: "Thailand", EntityType: "country", ValidRange: yr(1939, horizonMax)},
	}
}
