package motivation

import "math/rand"

type Quote struct {
	En string `json:"en"`
	Hi string `json:"hi"`
}

var quotes = []Quote{
	{
		En: "The secret of getting ahead is getting started.",
		Hi: "आगे बढ़ने का रहस्य शुरुआत करना है।",
	},
	{
		En: "It does not matter how slowly you go as long as you do not stop.",
		Hi: "यह मायने नहीं रखता कि आप कितना धीमा चलते हैं, जब तक आप रुकते नहीं।",
	},
	{
		En: "Believe you can and you're halfway there.",
		Hi: "विश्वास करें कि आप कर सकते हैं और आप आधा रास्ता तय कर चुके हैं।",
	},
	{
		En: "The only way to do great work is to love what you do.",
		Hi: "महान काम करने का एकमात्र तरीका यह है कि आप जो करते हैं उससे प्यार करें।",
	},
	{
		En: "Success is not final, failure is not fatal: it is the courage to continue that counts.",
		Hi: "सफलता अंतिम नहीं है, असफलता घातक नहीं है: यह जारी रखने का साहस है जो मायने रखता है।",
	},
	{
		En: "A journey of a thousand miles begins with a single step.",
		Hi: "हजारों मील की यात्रा एक कदम से शुरू होती है।",
	},
}

func Random() Quote {
	return quotes[rand.Intn(len(quotes))]
}

func All() []Quote {
	out := make([]Quote, len(quotes))
	copy(out, quotes)
	return out
}
