package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converte célula de planilha em número. Aceita separador de
// milhar ("1,250,000"), espaços e célula vazia/"nan"/"None". Qualquer coisa
// não numérica vira 0: o painel renderiza com dado parcial, não quebra.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch strings.ToLower(s) {
	case "nan", "none", "-":
		return 0
	}
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Round1 arredonda para 1 casa decimal (padrão dos percentuais do painel).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
