package planificacion

import "testing"

func arbolDeUnaTarea(tareaID uint, cantidad int, precio float64, gastos [12]float64) []PoaEdicion {
	return []PoaEdicion{{
		PoaID:     1,
		CodigoPoa: "POA-2025-PIF",
		TipoPoa:   "PIF",
		Actividades: []ActividadEdicion{{
			IDActividadReal: 10,
			Descripcion:     "Personal vinculado a la investigación",
			Tareas: []TareaEdicion{{
				TareaID:         tareaID,
				Nombre:          "Asistente de investigación",
				Cantidad:        cantidad,
				PrecioUnitario:  precio,
				Total:           float64(cantidad) * precio,
				GastosMensuales: gastos,
			}},
		}},
	}}
}

func TestClonarPoasEsCopiaProfunda(t *testing.T) {
	linea := 4
	original := arbolDeUnaTarea(1, 2, 986, [12]float64{986, 986})
	original[0].Actividades[0].Tareas[0].LineaPaiViiv = &linea

	clon := ClonarPoas(original)
	clon[0].Actividades[0].Tareas[0].Cantidad = 99
	clon[0].Actividades[0].Tareas[0].GastosMensuales[0] = 0
	*clon[0].Actividades[0].Tareas[0].LineaPaiViiv = 7

	tarea := original[0].Actividades[0].Tareas[0]
	if tarea.Cantidad != 2 {
		t.Error("mutar el clon alteró la cantidad del original")
	}
	if tarea.GastosMensuales[0] != 986 {
		t.Error("mutar el clon alteró el vector mensual del original")
	}
	if *tarea.LineaPaiViiv != 4 {
		t.Error("mutar el clon alteró la línea de referencia del original")
	}
}

func TestCompararArbolesClasificaTareas(t *testing.T) {
	original := arbolDeUnaTarea(1, 2, 986, [12]float64{986, 986})

	// Copia de trabajo: la tarea 1 cambia cantidad, y se agrega una nueva
	editado := ClonarPoas(original)
	editado[0].Actividades[0].Tareas[0].Cantidad = 3
	editado[0].Actividades[0].Tareas[0].Total = 3 * 986
	editado[0].Actividades[0].Tareas = append(editado[0].Actividades[0].Tareas, TareaEdicion{
		TempID:          "tmp-1",
		Nombre:          "Publicación de artículo",
		Cantidad:        1,
		PrecioUnitario:  400,
		Total:           400,
		GastosMensuales: [12]float64{400},
	})

	cambios := CompararArboles(original, editado)
	if len(cambios) != 1 {
		t.Fatalf("actividades con cambios = %d", len(cambios))
	}
	cs := cambios[0].Cambios
	if len(cs) != 2 {
		t.Fatalf("cambios de tarea = %d", len(cs))
	}

	if cs[0].Estado != TareaModificada {
		t.Errorf("estado de la tarea editada = %v", cs[0].Estado)
	}
	if !cs[0].CamposEditados {
		t.Error("el cambio de cantidad debe marcarse como campos editados")
	}
	if cs[0].ProgramacionCambiada {
		t.Error("el vector mensual no cambió")
	}
	if cs[0].Original == nil || cs[0].Original.Cantidad != 2 {
		t.Error("el cambio debe conservar la instantánea original")
	}

	if cs[1].Estado != TareaNueva {
		t.Errorf("estado de la tarea sin id = %v", cs[1].Estado)
	}
}

func TestCompararArbolesSinCambios(t *testing.T) {
	original := arbolDeUnaTarea(1, 2, 986, [12]float64{986, 986})
	editado := ClonarPoas(original)

	cambios := CompararArboles(original, editado)
	for _, ca := range cambios {
		for _, c := range ca.Cambios {
			if c.Estado != TareaSinCambios {
				t.Errorf("tarea %q clasificada como %v sin haber cambiado", c.Tarea.Nombre, c.Estado)
			}
		}
	}
}

func TestCompararArbolesDetectaCambioDeLinea(t *testing.T) {
	cuatro, siete := 4, 7

	original := arbolDeUnaTarea(1, 1, 500, [12]float64{500})
	original[0].Actividades[0].Tareas[0].LineaPaiViiv = &cuatro
	editado := ClonarPoas(original)
	editado[0].Actividades[0].Tareas[0].LineaPaiViiv = &siete

	cambios := CompararArboles(original, editado)
	c := cambios[0].Cambios[0]
	if c.Estado != TareaModificada || !c.CamposEditados {
		t.Error("el cambio de línea de referencia debe marcar la tarea como modificada")
	}
}
