// Package exportar genera la hoja de cálculo del plan de un POA. El formato
// visual (estilos de celda) queda fuera: solo valores.
package exportar

import (
	"fmt"

	"poa-backend/internal/planificacion"
	"poa-backend/internal/presupuesto"

	"github.com/xuri/excelize/v2"
)

var nombresMeses = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

const hojaPlan = "Plan"

// GenerarExcelPoa arma el libro con una fila por tarea, el desglose mensual
// completo y filas de total por actividad y total general.
func GenerarExcelPoa(poa planificacion.PoaEdicion) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", hojaPlan); err != nil {
		return nil, err
	}

	fila := 1
	if err := setCelda(f, 1, fila, fmt.Sprintf("POA %s — Año %d", poa.CodigoPoa, poa.AnioEjecucion)); err != nil {
		return nil, err
	}
	fila++
	if err := setCelda(f, 1, fila, fmt.Sprintf("Presupuesto asignado: %.2f", poa.PresupuestoAsignado)); err != nil {
		return nil, err
	}
	fila += 2

	encabezados := []string{"Actividad", "Tarea", "Item", "Cantidad", "Precio Unitario", "Total"}
	encabezados = append(encabezados, nombresMeses[:]...)
	encabezados = append(encabezados, "Suma Programada")
	for col, titulo := range encabezados {
		if err := setCelda(f, col+1, fila, titulo); err != nil {
			return nil, err
		}
	}
	fila++

	for _, act := range poa.Actividades {
		for _, t := range act.Tareas {
			valores := []any{
				act.Descripcion,
				t.Nombre,
				t.CodigoItem,
				t.Cantidad,
				t.PrecioUnitario,
				t.Total,
			}
			for _, gasto := range t.GastosMensuales {
				valores = append(valores, gasto)
			}
			valores = append(valores, planificacion.SumaGastos(t.GastosMensuales))

			for col, v := range valores {
				if err := setCelda(f, col+1, fila, v); err != nil {
					return nil, err
				}
			}
			fila++
		}

		if err := setCelda(f, 1, fila, fmt.Sprintf("Total actividad: %s", act.Descripcion)); err != nil {
			return nil, err
		}
		if err := setCelda(f, 6, fila, presupuesto.TotalActividad(act.Tareas)); err != nil {
			return nil, err
		}
		fila += 2
	}

	if err := setCelda(f, 1, fila, "Total planificado del POA"); err != nil {
		return nil, err
	}
	if err := setCelda(f, 6, fila, presupuesto.TotalPlanificadoPoa(poa.Actividades)); err != nil {
		return nil, err
	}

	return f, nil
}

func setCelda(f *excelize.File, col, fila int, valor any) error {
	celda, err := excelize.CoordinatesToCellName(col, fila)
	if err != nil {
		return err
	}
	return f.SetCellValue(hojaPlan, celda, valor)
}
