package selection

import (
	"github.com/GregMSThompson/finan-bff/internal/dto"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

const (
	textLight = "text-white"
	textDark  = "text-slate-900"
)

var themes = map[models.CardType]dto.Theme{
	models.CardCredit:     {Gradient: "bg-gradient-to-r from-[#4b6cb7] to-[#283048]", TextColor: textLight},
	models.CardSaving:     {Gradient: "bg-gradient-to-r from-emerald-500 via-emerald-500 to-emerald-600", TextColor: textLight},
	models.CardPersonal:   {Gradient: "bg-gradient-to-r from-[#d4e3ff] to-[#8b9bb5]", TextColor: textDark},
	models.CardInvestment: {Gradient: "bg-gradient-to-br from-blue-600 to-cyan-700", TextColor: textLight},
	models.CardMinePlus:   {Gradient: "bg-gradient-to-r from-yellow-400 via-amber-300 to-yellow-500", TextColor: textDark},
}

// ThemeFor returns the card colours for t. Unknown types get a neutral grey.
func ThemeFor(t models.CardType) dto.Theme {
	th, ok := themes[t]
	if !ok {
		th = dto.Theme{Gradient: "bg-gradient-to-br from-gray-500 to-slate-600", TextColor: textLight}
	}
	th.CardType = t
	return th
}
