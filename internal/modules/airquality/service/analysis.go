package service

// DefaultParameter is selected when the dashboard is first opened.
const DefaultParameter = "PM2.5"

var assessments = map[string]string{
	"CO":    "مقدار CO نسبتا پایین است، کیفیت هوا خوب است.",
	"NO2":   "NO2 در سطح متوسط، توجه به سلامت تنفسی توصیه می‌شود.",
	"PM2.5": "PM2.5 کمی بالا است، برای بیماران تنفسی مراقب باشید.",
	"PM10":  "PM10 نوسان متوسط دارد، کیفیت هوا قابل قبول است.",
	"SO2":   "SO2 در سطح پایین و ایمن قرار دارد.",
}

// Assessment returns the one-sentence reading of a parameter, or "" when the
// parameter has none.
func Assessment(parameter string) string {
	return assessments[parameter]
}
