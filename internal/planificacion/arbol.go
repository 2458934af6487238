package planificacion

// Tipos del árbol de edición POA → Actividad → Tarea que el cliente arma en
// una sesión de edición. El cliente nunca tiene estado autoritativo: esto es
// una copia de trabajo; la base de datos es la única fuente de verdad.

// TareaEdicion: tarea dentro del árbol de edición. TareaID en 0 significa
// tarea nueva aún no persistida; TempID es el identificador local del cliente.
type TareaEdicion struct {
	TareaID              uint        `json:"tarea_id"`
	TempID               string      `json:"temp_id,omitempty"`
	DetalleTareaID       uint        `json:"detalle_tarea_id"`
	Nombre               string      `json:"nombre"`
	Descripcion          string      `json:"descripcion"`
	ItemPresupuestarioID uint        `json:"item_presupuestario_id"`
	Cantidad             int         `json:"cantidad"`
	PrecioUnitario       float64     `json:"precio_unitario"`
	Total                float64     `json:"total"`
	SaldoDisponible      float64     `json:"saldo_disponible"`
	LineaPaiViiv         *int        `json:"lineaPaiViiv,omitempty"`
	GastosMensuales      [12]float64 `json:"gastos_mensuales"`
	// CodigoItem es solo para mostrar; lo llena la carga de la vista de edición
	CodigoItem string `json:"codigo_item,omitempty"`
}

// ActividadEdicion: CodigoActividad es la clave de catálogo usada solo antes
// de persistir; IDActividadReal referencia el id del servidor una vez creada.
type ActividadEdicion struct {
	IDActividadReal uint           `json:"id_actividad_real"`
	CodigoActividad string         `json:"codigo_actividad,omitempty"`
	Descripcion     string         `json:"descripcion"`
	Tareas          []TareaEdicion `json:"tareas"`
}

type PoaEdicion struct {
	PoaID               uint               `json:"poa_id"`
	CodigoPoa           string             `json:"codigo_poa"`
	TipoPoa             string             `json:"tipo_poa"`
	AnioEjecucion       int                `json:"anio_ejecucion"`
	PresupuestoAsignado float64            `json:"presupuesto_asignado"`
	Actividades         []ActividadEdicion `json:"actividades"`
}

// ClonarPoas produce una copia profunda del árbol. El original de una sesión
// de edición se clona al abrirla y no vuelve a mutarse: el diff siempre
// compara esa instantánea inmutable contra la copia de trabajo.
func ClonarPoas(poas []PoaEdicion) []PoaEdicion {
	clon := make([]PoaEdicion, len(poas))
	for i, p := range poas {
		cp := p
		cp.Actividades = make([]ActividadEdicion, len(p.Actividades))
		for j, a := range p.Actividades {
			ca := a
			ca.Tareas = make([]TareaEdicion, len(a.Tareas))
			for k, t := range a.Tareas {
				ct := t
				if t.LineaPaiViiv != nil {
					linea := *t.LineaPaiViiv
					ct.LineaPaiViiv = &linea
				}
				ca.Tareas[k] = ct
			}
			cp.Actividades[j] = ca
		}
		clon[i] = cp
	}
	return clon
}

// EstadoTarea clasifica cada tarea del árbol editado frente a la instantánea.
type EstadoTarea int

const (
	TareaNueva EstadoTarea = iota
	TareaModificada
	TareaSinCambios
)

// CambioTarea: resultado del diff para una tarea concreta. CamposEditados
// indica cambios en cantidad, precio unitario o línea de referencia;
// ProgramacionCambiada indica cambios en el vector mensual.
type CambioTarea struct {
	Estado               EstadoTarea
	Tarea                TareaEdicion
	Original             *TareaEdicion
	CamposEditados       bool
	ProgramacionCambiada bool
}

type CambioActividad struct {
	IDActividadReal uint
	Descripcion     string
	Cambios         []CambioTarea
}

// CompararArboles compara la copia de trabajo contra la instantánea original
// y devuelve el conjunto de cambios tipado por actividad. Las tareas del
// original se indexan por su id real; una tarea editada sin id es nueva.
func CompararArboles(original, editado []PoaEdicion) []CambioActividad {
	originales := make(map[uint]TareaEdicion)
	for _, p := range original {
		for _, a := range p.Actividades {
			for _, t := range a.Tareas {
				if t.TareaID != 0 {
					originales[t.TareaID] = t
				}
			}
		}
	}

	var cambios []CambioActividad
	for _, p := range editado {
		for _, a := range p.Actividades {
			ca := CambioActividad{
				IDActividadReal: a.IDActividadReal,
				Descripcion:     a.Descripcion,
			}
			for _, t := range a.Tareas {
				if t.TareaID == 0 {
					ca.Cambios = append(ca.Cambios, CambioTarea{Estado: TareaNueva, Tarea: t})
					continue
				}

				orig, existe := originales[t.TareaID]
				if !existe {
					// Sin instantánea previa se trata como modificada completa
					ca.Cambios = append(ca.Cambios, CambioTarea{
						Estado:               TareaModificada,
						Tarea:                t,
						CamposEditados:       true,
						ProgramacionCambiada: true,
					})
					continue
				}

				campos := camposEditados(orig, t)
				programacion := orig.GastosMensuales != t.GastosMensuales
				if !campos && !programacion {
					ca.Cambios = append(ca.Cambios, CambioTarea{Estado: TareaSinCambios, Tarea: t, Original: &orig})
					continue
				}
				origCopia := orig
				ca.Cambios = append(ca.Cambios, CambioTarea{
					Estado:               TareaModificada,
					Tarea:                t,
					Original:             &origCopia,
					CamposEditados:       campos,
					ProgramacionCambiada: programacion,
				})
			}
			cambios = append(cambios, ca)
		}
	}
	return cambios
}

func camposEditados(orig, edit TareaEdicion) bool {
	if orig.Cantidad != edit.Cantidad || orig.PrecioUnitario != edit.PrecioUnitario {
		return true
	}
	switch {
	case orig.LineaPaiViiv == nil && edit.LineaPaiViiv == nil:
		return false
	case orig.LineaPaiViiv == nil || edit.LineaPaiViiv == nil:
		return true
	default:
		return *orig.LineaPaiViiv != *edit.LineaPaiViiv
	}
}
