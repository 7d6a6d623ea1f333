package domain

import "strings"

// ExpenseCategories are the predefined categories for expense entries.
var ExpenseCategories = []string{
	"Alimentación",
	"Vivienda",
	"Transporte",
	"Entretenimiento",
	"Salud",
	"Educación",
	"Ropa",
	"Inversión",
	"Servicios",
	"Seguros",
	"Deudas",
	"Ahorro",
	"Otros",
}

// IncomeCategories are the predefined categories for income entries.
var IncomeCategories = []string{
	"Salario",
	"Ingresos Freelance",
	"Inversiones",
	"Regalos",
	"Reembolsos",
	"Alquileres",
	"Ventas",
	"Ahorro",
	"Otros",
}

// CategoryColors maps every known category to its chart color.
var CategoryColors = map[string]string{
	"Alimentación":       "#22c55e",
	"Vivienda":           "#8b5cf6",
	"Transporte":         "#3b82f6",
	"Entretenimiento":    "#f59e0b",
	"Salud":              "#10b981",
	"Educación":          "#ec4899",
	"Ropa":               "#a855f7",
	"Inversión":          "#6366f1",
	"Servicios":          "#e879f9",
	"Seguros":            "#eab308",
	"Deudas":             "#ef4444",
	"Otros":              "#6b7280",
	"Salario":            "#16a34a",
	"Ingresos Freelance": "#2563eb",
	"Inversiones":        "#db2777",
	"Regalos":            "#9333ea",
	"Reembolsos":         "#0891b2",
	"Alquileres":         "#4f46e5",
	"Ventas":             "#d97706",
	"Ahorro":             "#14b8a6",
	"Sin Categoría":      "#9CA3AF",
}

// ColorFor returns the chart color for a category, with a neutral
// fallback for unknown ones.
func ColorFor(category string) string {
	if c, ok := CategoryColors[category]; ok {
		return c
	}
	return "#6b7280"
}

// IconFor picks the display icon for a transaction by category and type.
func IconFor(category string, typ TransactionType) string {
	lower := strings.ToLower(category)
	if typ == TypeIncome {
		if strings.Contains(lower, "ahorro") {
			return "fas fa-piggy-bank"
		}
		return "fas fa-briefcase"
	}

	switch {
	case strings.Contains(lower, "vivienda"), strings.Contains(lower, "alquiler"):
		return "fas fa-home"
	case strings.Contains(lower, "entretenimiento"), strings.Contains(lower, "netflix"):
		return "fas fa-film"
	case strings.Contains(lower, "alimentación"), strings.Contains(lower, "supermercado"), strings.Contains(lower, "restaurante"):
		return "fas fa-utensils"
	case strings.Contains(lower, "inversión"):
		return "fas fa-chart-line"
	case strings.Contains(lower, "transporte"), strings.Contains(lower, "gasolina"):
		return "fas fa-gas-pump"
	case strings.Contains(lower, "compras"):
		return "fas fa-shopping-cart"
	case strings.Contains(lower, "otros"):
		return "fas fa-tag"
	case strings.Contains(lower, "salud"):
		return "fas fa-medkit"
	case strings.Contains(lower, "educación"):
		return "fas fa-graduation-cap"
	case strings.Contains(lower, "ropa"):
		return "fas fa-tshirt"
	case strings.Contains(lower, "servicios"):
		return "fas fa-tools"
	case strings.Contains(lower, "seguros"):
		return "fas fa-shield-alt"
	case strings.Contains(lower, "deudas"):
		return "fas fa-hand-holding-usd"
	case strings.Contains(lower, "ahorro"):
		return "fas fa-piggy-bank"
	}
	return "fas fa-dollar-sign"
}

// CategoryForBillName infers a category for a bill from keywords in its
// name. Used when no prior transaction with the same name exists.
func CategoryForBillName(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "alquiler"), strings.Contains(lower, "hipoteca"):
		return "Vivienda"
	case strings.Contains(lower, "luz"), strings.Contains(lower, "electr"), strings.Contains(lower, "agua"):
		return "Servicios"
	case strings.Contains(lower, "internet"), strings.Contains(lower, "teléfono"), strings.Contains(lower, "móvil"):
		return "Servicios"
	case strings.Contains(lower, "netflix"), strings.Contains(lower, "spotify"), strings.Contains(lower, "suscripción"):
		return "Entretenimiento"
	case strings.Contains(lower, "crédito"), strings.Contains(lower, "préstamo"):
		return "Deudas"
	case strings.Contains(lower, "seguro"):
		return "Seguros"
	}
	return "Otros"
}
