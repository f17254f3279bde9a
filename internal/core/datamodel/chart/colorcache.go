package chart

// ColorCache pins a display color to every date and category that has ever
// appeared in a chart, so colors stay stable across re-renders.
type ColorCache struct {
	BarChartColors map[string]string `json:"barChartColors"`
	PieChartColors map[string]string `json:"pieChartColors"`
}
