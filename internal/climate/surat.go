package climate

// Surat returns the built-in climate profile for Surat, Gujarat: a dry
// winter, a harsh pre-monsoon hot season with daytime highs near 39 C, and
// a cloudy monsoon that cuts surface PAR roughly in half. PAR is the
// daily-averaged value at the culture surface after reflection and shading
// losses; cardinal temperatures are for Chlorella vulgaris.
func Surat() CityClimate {
	return CityClimate{
		Name: "surat",
		Months: [12]MonthlyClimate{
			{TempDay: 29.9, TempNight: 16.5, PAR: 430, Photoperiod: 10.9, Season: SeasonDry},     // Jan
			{TempDay: 32.6, TempNight: 18.9, PAR: 470, Photoperiod: 11.4, Season: SeasonDry},     // Feb
			{TempDay: 35.8, TempNight: 22.5, PAR: 520, Photoperiod: 12.0, Season: SeasonHot},     // Mar
			{TempDay: 38.2, TempNight: 25.6, PAR: 560, Photoperiod: 12.6, Season: SeasonHot},     // Apr
			{TempDay: 38.9, TempNight: 27.2, PAR: 580, Photoperiod: 13.1, Season: SeasonHot},     // May
			{TempDay: 35.4, TempNight: 27.0, PAR: 450, Photoperiod: 13.4, Season: SeasonMonsoon}, // Jun
			{TempDay: 31.8, TempNight: 26.1, PAR: 330, Photoperiod: 13.3, Season: SeasonMonsoon}, // Jul
			{TempDay: 31.2, TempNight: 25.6, PAR: 320, Photoperiod: 12.9, Season: SeasonMonsoon}, // Aug
			{TempDay: 32.8, TempNight: 25.3, PAR: 390, Photoperiod: 12.3, Season: SeasonMonsoon}, // Sep
			{TempDay: 34.9, TempNight: 23.6, PAR: 480, Photoperiod: 11.6, Season: SeasonDry},     // Oct
			{TempDay: 33.0, TempNight: 20.2, PAR: 450, Photoperiod: 11.0, Season: SeasonDry},     // Nov
			{TempDay: 30.7, TempNight: 17.4, PAR: 420, Photoperiod: 10.7, Season: SeasonDry},     // Dec
		},
		Cardinal: CardinalTemperatures{TMin: 5.0, TOpt: 30.0, TMax: 42.0},
	}
}

// Profiles maps built-in profile names to constructors.
var Profiles = map[string]func() CityClimate{
	"surat": Surat,
}

// Get returns a built-in profile by name, or false when unknown.
func Get(name string) (CityClimate, bool) {
	fn, ok := Profiles[name]
	if !ok {
		return CityClimate{}, false
	}
	return fn(), true
}
