package planificacion

import (
	"errors"
	"strings"

	"poa-backend/internal/models"

	"gorm.io/gorm"
)

// ErrProgramacionDuplicada: ya existe un registro para ese (tarea, mes). Se
// expone como error propio para que el motor lo traduzca a un mensaje claro
// en lugar de un fallo genérico.
var ErrProgramacionDuplicada = errors.New("Ya existe programación para ese mes y tarea.")

// ErrTareaNoEncontrada se corresponde con el detalle 404 "Tarea no encontrada".
var ErrTareaNoEncontrada = errors.New("Tarea no encontrada")

// ErrItemNoAsociado se corresponde con el detalle 404 "Item presupuestario no asociado a esta tarea".
var ErrItemNoAsociado = errors.New("Item presupuestario no asociado a esta tarea")

// Almacen es el colaborador de persistencia del motor. El motor lo ve como
// operaciones lógicas; la implementación de producción va contra Postgres.
type Almacen interface {
	CrearActividades(poaID uint, actividades []models.Actividad) ([]models.Actividad, error)
	ActividadesPorPoa(poaID uint) ([]models.Actividad, error)

	CrearTarea(t *models.Tarea) error
	ActualizarTarea(id uint, cantidad int, precioUnitario, total float64, lineaPaiViiv *int) error
	ObtenerTarea(id uint) (models.Tarea, error)
	TareasPorActividad(actividadID uint) ([]models.Tarea, error)

	CrearProgramacion(p *models.ProgramacionMensual) error
	ActualizarProgramacion(id uint, valor float64) error
	EliminarProgramacionDeTarea(tareaID uint) error
	ProgramacionPorTarea(tareaID uint) ([]models.ProgramacionMensual, error)

	ObtenerItem(id uint) (models.ItemPresupuestario, error)
}

type AlmacenGorm struct {
	db *gorm.DB
}

func NuevoAlmacenGorm(db *gorm.DB) *AlmacenGorm {
	return &AlmacenGorm{db: db}
}

func (a *AlmacenGorm) CrearActividades(poaID uint, actividades []models.Actividad) ([]models.Actividad, error) {
	for i := range actividades {
		actividades[i].PoaID = poaID
	}
	if err := a.db.Create(&actividades).Error; err != nil {
		return nil, err
	}
	return actividades, nil
}

func (a *AlmacenGorm) ActividadesPorPoa(poaID uint) ([]models.Actividad, error) {
	var actividades []models.Actividad
	err := a.db.Where("poa_id = ?", poaID).Order("id asc").Find(&actividades).Error
	return actividades, err
}

func (a *AlmacenGorm) CrearTarea(t *models.Tarea) error {
	return a.db.Create(t).Error
}

// ActualizarTarea escribe solo los campos editables y el total derivado; el
// saldo disponible se administra por su propio flujo de ejecución y no se
// pisa desde la edición del plan.
func (a *AlmacenGorm) ActualizarTarea(id uint, cantidad int, precioUnitario, total float64, lineaPaiViiv *int) error {
	res := a.db.Model(&models.Tarea{}).Where("id = ?", id).Updates(map[string]any{
		"cantidad":        cantidad,
		"precio_unitario": precioUnitario,
		"total":           total,
		"linea_pai_viiv":  lineaPaiViiv,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTareaNoEncontrada
	}
	return nil
}

func (a *AlmacenGorm) ObtenerTarea(id uint) (models.Tarea, error) {
	var t models.Tarea
	if err := a.db.First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return t, ErrTareaNoEncontrada
		}
		return t, err
	}
	return t, nil
}

func (a *AlmacenGorm) TareasPorActividad(actividadID uint) ([]models.Tarea, error) {
	var tareas []models.Tarea
	err := a.db.Where("actividad_id = ?", actividadID).Order("id asc").Find(&tareas).Error
	return tareas, err
}

func (a *AlmacenGorm) CrearProgramacion(p *models.ProgramacionMensual) error {
	// Chequeo previo para dar un error claro; el índice único cubre la carrera
	var count int64
	if err := a.db.Model(&models.ProgramacionMensual{}).
		Where("tarea_id = ? AND mes = ?", p.TareaID, p.Mes).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrProgramacionDuplicada
	}
	if err := a.db.Create(p).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProgramacionDuplicada
		}
		return err
	}
	return nil
}

func (a *AlmacenGorm) ActualizarProgramacion(id uint, valor float64) error {
	return a.db.Model(&models.ProgramacionMensual{}).Where("id = ?", id).
		Update("valor", valor).Error
}

func (a *AlmacenGorm) EliminarProgramacionDeTarea(tareaID uint) error {
	return a.db.Delete(&models.ProgramacionMensual{}, "tarea_id = ?", tareaID).Error
}

func (a *AlmacenGorm) ProgramacionPorTarea(tareaID uint) ([]models.ProgramacionMensual, error) {
	var filas []models.ProgramacionMensual
	err := a.db.Where("tarea_id = ?", tareaID).Order("id asc").Find(&filas).Error
	return filas, err
}

func (a *AlmacenGorm) ObtenerItem(id uint) (models.ItemPresupuestario, error) {
	var item models.ItemPresupuestario
	if err := a.db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return item, ErrItemNoAsociado
		}
		return item, err
	}
	return item, nil
}
