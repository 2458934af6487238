package planificacion

import (
	"errors"
	"fmt"

	"poa-backend/internal/models"
)

// almacenFalso implementa Almacen en memoria y cuenta cada operación de
// escritura, para poder afirmar cuántas llamadas produjo una reconciliación.
type almacenFalso struct {
	siguienteID uint

	actividades   map[uint]models.Actividad
	tareas        map[uint]models.Tarea
	programacion  map[uint]models.ProgramacionMensual
	items         map[uint]models.ItemPresupuestario
	tareasPorAct  map[uint][]uint
	programPorTar map[uint][]uint

	creacionesActividad    int
	creacionesTarea        int
	actualizacionesTarea   int
	creacionesProgramacion int
	actualizacionesProg    int
	eliminacionesProg      int

	// Guiones de fallo
	fallarCrearTareaEn        int // falla la n-ésima creación de tarea (1-based); 0 = nunca
	fallarCrearProgramacionEn int
	recortarLoteActividades   bool // simula un lote que devuelve menos ids de los pedidos
}

func nuevoAlmacenFalso() *almacenFalso {
	return &almacenFalso{
		actividades:   make(map[uint]models.Actividad),
		tareas:        make(map[uint]models.Tarea),
		programacion:  make(map[uint]models.ProgramacionMensual),
		items:         make(map[uint]models.ItemPresupuestario),
		tareasPorAct:  make(map[uint][]uint),
		programPorTar: make(map[uint][]uint),
	}
}

func (a *almacenFalso) escrituras() int {
	return a.creacionesActividad + a.creacionesTarea + a.actualizacionesTarea +
		a.creacionesProgramacion + a.actualizacionesProg + a.eliminacionesProg
}

func (a *almacenFalso) nuevoID() uint {
	a.siguienteID++
	return a.siguienteID
}

func (a *almacenFalso) CrearActividades(poaID uint, actividades []models.Actividad) ([]models.Actividad, error) {
	creadas := make([]models.Actividad, 0, len(actividades))
	for _, act := range actividades {
		act.ID = a.nuevoID()
		act.PoaID = poaID
		a.actividades[act.ID] = act
		creadas = append(creadas, act)
		a.creacionesActividad++
	}
	if a.recortarLoteActividades && len(creadas) > 0 {
		creadas = creadas[:len(creadas)-1]
	}
	return creadas, nil
}

func (a *almacenFalso) ActividadesPorPoa(poaID uint) ([]models.Actividad, error) {
	var out []models.Actividad
	for id := uint(1); id <= a.siguienteID; id++ {
		if act, ok := a.actividades[id]; ok && act.PoaID == poaID {
			out = append(out, act)
		}
	}
	return out, nil
}

func (a *almacenFalso) CrearTarea(t *models.Tarea) error {
	a.creacionesTarea++
	if a.fallarCrearTareaEn > 0 && a.creacionesTarea == a.fallarCrearTareaEn {
		return fmt.Errorf("fallo simulado al crear la tarea %q", t.Nombre)
	}
	t.ID = a.nuevoID()
	a.tareas[t.ID] = *t
	a.tareasPorAct[t.ActividadID] = append(a.tareasPorAct[t.ActividadID], t.ID)
	return nil
}

func (a *almacenFalso) ActualizarTarea(id uint, cantidad int, precioUnitario, total float64, lineaPaiViiv *int) error {
	t, ok := a.tareas[id]
	if !ok {
		return ErrTareaNoEncontrada
	}
	t.Cantidad = cantidad
	t.PrecioUnitario = precioUnitario
	t.Total = total
	t.LineaPaiViiv = lineaPaiViiv
	a.tareas[id] = t
	a.actualizacionesTarea++
	return nil
}

func (a *almacenFalso) ObtenerTarea(id uint) (models.Tarea, error) {
	t, ok := a.tareas[id]
	if !ok {
		return models.Tarea{}, ErrTareaNoEncontrada
	}
	return t, nil
}

func (a *almacenFalso) TareasPorActividad(actividadID uint) ([]models.Tarea, error) {
	var out []models.Tarea
	for _, id := range a.tareasPorAct[actividadID] {
		out = append(out, a.tareas[id])
	}
	return out, nil
}

func (a *almacenFalso) CrearProgramacion(p *models.ProgramacionMensual) error {
	a.creacionesProgramacion++
	if a.fallarCrearProgramacionEn > 0 && a.creacionesProgramacion == a.fallarCrearProgramacionEn {
		return errors.New("fallo simulado al crear programación")
	}
	for _, id := range a.programPorTar[p.TareaID] {
		if a.programacion[id].Mes == p.Mes {
			return ErrProgramacionDuplicada
		}
	}
	p.ID = a.nuevoID()
	a.programacion[p.ID] = *p
	a.programPorTar[p.TareaID] = append(a.programPorTar[p.TareaID], p.ID)
	return nil
}

func (a *almacenFalso) ActualizarProgramacion(id uint, valor float64) error {
	p, ok := a.programacion[id]
	if !ok {
		return errors.New("programación no encontrada")
	}
	p.Valor = valor
	a.programacion[id] = p
	a.actualizacionesProg++
	return nil
}

func (a *almacenFalso) EliminarProgramacionDeTarea(tareaID uint) error {
	for _, id := range a.programPorTar[tareaID] {
		delete(a.programacion, id)
	}
	delete(a.programPorTar, tareaID)
	a.eliminacionesProg++
	return nil
}

func (a *almacenFalso) ProgramacionPorTarea(tareaID uint) ([]models.ProgramacionMensual, error) {
	var out []models.ProgramacionMensual
	for _, id := range a.programPorTar[tareaID] {
		out = append(out, a.programacion[id])
	}
	return out, nil
}

func (a *almacenFalso) ObtenerItem(id uint) (models.ItemPresupuestario, error) {
	item, ok := a.items[id]
	if !ok {
		return models.ItemPresupuestario{}, ErrItemNoAsociado
	}
	return item, nil
}
