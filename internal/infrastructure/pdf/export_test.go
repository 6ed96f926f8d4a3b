package pdf

var (
	FormatMoney = formatMoney
	HexColor    = hexColor
)
