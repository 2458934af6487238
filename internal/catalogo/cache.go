package catalogo

import (
	"container/list"
	"sync"

	"poa-backend/internal/models"
)

// CacheItems memoriza items presupuestarios por id para no repetir lecturas
// durante una sesión de edición. Es un LRU acotado; se vacía explícitamente
// con Limpiar() cada vez que se abre una sesión de edición (lo invoca el
// handler que carga la vista del plan).
type CacheItems struct {
	mu        sync.Mutex
	capacidad int
	orden     *list.List // frente = más reciente
	entradas  map[uint]*list.Element
}

type entradaCache struct {
	id   uint
	item models.ItemPresupuestario
}

func NuevoCacheItems(capacidad int) *CacheItems {
	if capacidad <= 0 {
		capacidad = 128
	}
	return &CacheItems{
		capacidad: capacidad,
		orden:     list.New(),
		entradas:  make(map[uint]*list.Element),
	}
}

// Obtener devuelve el item del caché o lo resuelve con cargar y lo memoriza.
// Los errores de carga no se cachean.
func (c *CacheItems) Obtener(id uint, cargar BuscarItem) (models.ItemPresupuestario, error) {
	c.mu.Lock()
	if el, ok := c.entradas[id]; ok {
		c.orden.MoveToFront(el)
		item := el.Value.(entradaCache).item
		c.mu.Unlock()
		return item, nil
	}
	c.mu.Unlock()

	item, err := cargar(id)
	if err != nil {
		return models.ItemPresupuestario{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entradas[id]; ok {
		c.orden.MoveToFront(el)
		return el.Value.(entradaCache).item, nil
	}
	c.entradas[id] = c.orden.PushFront(entradaCache{id: id, item: item})
	if c.orden.Len() > c.capacidad {
		ultimo := c.orden.Back()
		if ultimo != nil {
			c.orden.Remove(ultimo)
			delete(c.entradas, ultimo.Value.(entradaCache).id)
		}
	}
	return item, nil
}

// Limpiar vacía el caché; marca el fin de una sesión de edición.
func (c *CacheItems) Limpiar() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.orden.Init()
	c.entradas = make(map[uint]*list.Element)
}

// Tamanio devuelve la cantidad de entradas vivas (para diagnóstico y pruebas).
func (c *CacheItems) Tamanio() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orden.Len()
}
