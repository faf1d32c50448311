package database

import (
	"log"

	"asador-backend/internal/config"
	"asador-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	err = DB.AutoMigrate(
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.ActiveSale{},
		&models.ClosedSale{},
		&models.Expense{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	seedMenu()

	log.Println("Conexión a la base de datos lista. Migración completada.")
}

// seedMenu carga el menú inicial del puesto la primera vez que arranca con la
// base vacía. Después de eso el menú sólo cambia por edición del administrador.
func seedMenu() {
	var count int64
	if err := DB.Model(&models.MenuCategory{}).Count(&count).Error; err != nil {
		log.Printf("No se pudo verificar el menú inicial: %v", err)
		return
	}
	if count > 0 {
		return
	}

	log.Println("Menú vacío, cargando menú inicial...")

	categories := []models.MenuCategory{
		{
			ID:   "tacos",
			Name: "Tacos y Antojitos",
			Items: []models.MenuItem{
				{ID: "taco-asada", Name: "Taco de Asada", Price: 50, Available: true, PricingMode: models.PricingStandard},
				{ID: "taco-asada-par", Name: "Taco de Asada (2 pzas)", Price: 90, Available: true, PricingMode: models.PricingBundle, BundleSize: 2},
				{ID: "taco-pastor", Name: "Taco de Pastor", Price: 45, Available: true, PricingMode: models.PricingStandard},
				{ID: "taco-pastor-par", Name: "Taco de Pastor (2 pzas)", Price: 80, Available: true, PricingMode: models.PricingBundle, BundleSize: 2},
				{ID: "quesadilla", Name: "Quesadilla", Price: 40, Available: true, PricingMode: models.PricingStandard},
			},
		},
		{
			ID:       "charolas",
			Name:     "Charolas",
			Position: 1,
			Items: []models.MenuItem{
				{ID: "charola-combinada", Name: "Charola Combinada", Available: true, PricingMode: models.PricingMultiOption, Options: models.PriceOptions{
					{Name: "Chica", Price: 120},
					{Name: "Mediana", Price: 180},
					{Name: "Grande", Price: 240},
				}},
			},
		},
		{
			ID:       "bebidas",
			Name:     "Bebidas",
			Position: 2,
			Items: []models.MenuItem{
				{ID: "refresco", Name: "Refresco", Price: 25, Available: true, PricingMode: models.PricingStandard},
				{ID: "agua-fresca", Name: "Agua Fresca", Price: 20, Available: true, PricingMode: models.PricingStandard},
			},
		},
		{
			ID:       "servicios",
			Name:     "Servicios",
			Position: 3,
			Items: []models.MenuItem{
				{ID: "envio", Name: "Servicio a Domicilio", Available: true, PricingMode: models.PricingCustomAmount, Note: "Ingresa el monto del servicio"},
			},
		},
	}

	for ci := range categories {
		for ii := range categories[ci].Items {
			categories[ci].Items[ii].CategoryID = categories[ci].ID
			categories[ci].Items[ii].Position = ii
		}
		if err := DB.Create(&categories[ci]).Error; err != nil {
			log.Printf("No se pudo sembrar la categoría %s: %v", categories[ci].ID, err)
		}
	}
}
