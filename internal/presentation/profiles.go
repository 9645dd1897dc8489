package presentation

var analysis = Profile{
	Name:     "analysis",
	Lang:     "es",
	Title:    "Dashboard de Ventas - Tiendas de Conveniencia",
	Subtitle: "Análisis de ventas por género, ciudad, tipo de cliente y línea de productos",
	Labels: Labels{
		Filters:            "Filtros",
		ProductLine:        "Línea de Producto",
		City:               "Ciudad",
		Gender:             "Género",
		AllProductLines:    "Todos",
		AllCities:          "Todas",
		AllGenders:         "Todos",
		GenderMale:         "Male",
		GenderFemale:       "Female",
		Metrics:            "Indicadores Clave",
		TotalSales:         "Total Ventas ($)",
		AverageRating:      "Promedio de Calificaciones",
		AverageGrossIncome: "Ingresos Brutos Promedio ($)",
		NoData:             "Sin datos",
		MonthlySales:       "Ventas Totales por Mes",
		PriceDistribution:  "Distribución de Precios por Línea de Producto",
		RatingHistogram:    "Distribución de Calificaciones",
		Scatter3D:          "Relación 3D: Precio, Total y Calificación",
		Preview:            "Vista previa del dataset",
	},
	Objective: `<h3>Objetivo</h3>
<p>Este dashboard tiene como propósito analizar y visualizar datos de ventas de una cadena de tiendas de conveniencia, con foco en patrones de comportamiento por género, ciudad, tipo de cliente y línea de productos.</p>
<h3>a. Examen del Conjunto de Datos</h3>
<p>El conjunto de datos contiene información detallada sobre transacciones realizadas en una cadena de tiendas de conveniencia: producto vendido, género del cliente, método de pago, fecha, hora y monto total, entre otros.</p>`,
	Variables: `<h3>b. Variables Seleccionadas y Justificación</h3>
<table>
<thead><tr><th>Variable</th><th>Justificación</th></tr></thead>
<tbody>
<tr><td><code>Product line</code></td><td>Permite identificar qué categorías de productos son más vendidas.</td></tr>
<tr><td><code>Month</code></td><td>Derivada de <code>Date</code>, permite observar tendencias mensuales.</td></tr>
<tr><td><code>Gender</code></td><td>Permite analizar diferencias de comportamiento entre hombres y mujeres.</td></tr>
<tr><td><code>Payment</code></td><td>Permite conocer las preferencias de método de pago de los clientes.</td></tr>
<tr><td><code>Quantity</code> y <code>Total</code></td><td>Volumen de ventas e ingreso total por transacción.</td></tr>
<tr><td><code>Unit price</code></td><td>Permite analizar si productos más caros tienen menor o mayor frecuencia de compra.</td></tr>
</tbody>
</table>`,
	Conclusions: `<h3>Conclusiones</h3>
<ol>
<li><strong>Preferencias por género</strong>: algunas líneas de productos tienen diferencias claras en preferencia entre hombres y mujeres.</li>
<li><strong>Distribución geográfica</strong>: la ciudad influye en los patrones de consumo y métodos de pago.</li>
<li><strong>Satisfacción del cliente</strong>: las evaluaciones promedio permiten inferir la percepción de calidad.</li>
<li><strong>Relación entre variables</strong>: hay correlaciones entre precio unitario, total y satisfacción.</li>
</ol>`,
	Credits: `<h3>Créditos</h3>
<p>Elaborado por el equipo de análisis de datos para la asignatura de Visualización.</p>`,
}

var brief = Profile{
	Name:     "brief",
	Lang:     "en",
	Title:    "🛒 Convenience Store Sales",
	Subtitle: "Filter the transactions and explore the numbers",
	Labels: Labels{
		Filters:            "🔎 Filters",
		ProductLine:        "Product line",
		City:               "City",
		Gender:             "Gender",
		AllProductLines:    "All",
		AllCities:          "All",
		AllGenders:         "All",
		GenderMale:         "Male",
		GenderFemale:       "Female",
		Metrics:            "📊 Key metrics",
		TotalSales:         "💰 Total sales ($)",
		AverageRating:      "⭐ Average rating",
		AverageGrossIncome: "📈 Average gross income ($)",
		NoData:             "No data",
		MonthlySales:       "📅 Sales per month",
		PriceDistribution:  "📦 Unit price by product line",
		RatingHistogram:    "⭐ Rating distribution",
		Scatter3D:          "🧊 Price, total and rating",
		Preview:            "🗂 Dataset preview",
	},
}
