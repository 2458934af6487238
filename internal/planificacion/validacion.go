package planificacion

import (
	"fmt"
	"math"
)

// Tolerancia de comparación monetaria (un centavo), para absorber ruido de
// punto flotante en las sumas.
const Tolerancia = 0.01

// SumaGastos devuelve la suma del vector mensual de una tarea.
func SumaGastos(gastos [12]float64) float64 {
	suma := 0.0
	for _, v := range gastos {
		suma += v
	}
	return suma
}

// ValidarTotalTarea exige cantidad y precio positivos y que el total sea
// exactamente cantidad × precio unitario.
func ValidarTotalTarea(t TareaEdicion) error {
	if t.Cantidad <= 0 {
		return fmt.Errorf("la cantidad debe ser mayor a 0")
	}
	if t.PrecioUnitario <= 0 {
		return fmt.Errorf("el precio unitario debe ser mayor a 0")
	}
	esperado := float64(t.Cantidad) * t.PrecioUnitario
	if math.Abs(t.Total-esperado) > Tolerancia {
		return fmt.Errorf("el total (%.2f) no corresponde a cantidad × precio unitario (%.2f)", t.Total, esperado)
	}
	return nil
}

// ValidarProgramacionTarea exige que la suma del vector mensual coincida con
// el total de la tarea. El mensaje indica la diferencia exacta para que el
// usuario sepa cuánto sobra o cuánto falta por programar.
func ValidarProgramacionTarea(t TareaEdicion) error {
	suma := SumaGastos(t.GastosMensuales)
	diferencia := suma - t.Total
	if math.Abs(diferencia) <= Tolerancia {
		return nil
	}
	if diferencia > 0 {
		return fmt.Errorf("la programación mensual (%.2f) excede el total de la tarea (%.2f) por %.2f", suma, t.Total, diferencia)
	}
	return fmt.Errorf("la programación mensual (%.2f) no alcanza el total de la tarea (%.2f): faltan %.2f por programar", suma, t.Total, -diferencia)
}
