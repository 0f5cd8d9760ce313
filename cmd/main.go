package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/inmobiliaria-rd/api-contratos/internal/auth"
	"github.com/inmobiliaria-rd/api-contratos/internal/contrato"
	"github.com/inmobiliaria-rd/api-contratos/internal/documento"
	"github.com/inmobiliaria-rd/api-contratos/internal/notificacion"
	"github.com/inmobiliaria-rd/api-contratos/internal/parrafo"
	"github.com/inmobiliaria-rd/api-contratos/internal/participante"
	"github.com/inmobiliaria-rd/api-contratos/internal/persona"
	"github.com/inmobiliaria-rd/api-contratos/internal/pipeline"
	"github.com/inmobiliaria-rd/api-contratos/internal/prestamo"
	"github.com/inmobiliaria-rd/api-contratos/internal/propiedad"
	"github.com/inmobiliaria-rd/api-contratos/internal/usuario"
	"github.com/inmobiliaria-rd/api-contratos/internal/utils/db"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("No se pudo iniciar el logger:", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	conexion, err := db.ObtenerDB()
	if err != nil {
		sugar.Fatalw("error conectando a la base de datos", "error", err)
	}

	// AutoMigrate para todos los modelos
	if err := conexion.AutoMigrate(
		&persona.Persona{},
		&persona.PersonaDocumento{},
		&persona.PersonaDireccion{},
		&persona.Empresa{},
		&persona.EmpresaGerente{},
		&persona.EmpresaDireccion{},
		&contrato.Contrato{},
		&contrato.ContratoParticipante{},
		&contrato.Cliente{},
		&contrato.Referidor{},
		&contrato.ClienteReferidor{},
		&prestamo.Prestamo{},
		&prestamo.CuentaBancaria{},
		&propiedad.Propiedad{},
		&propiedad.ContratoPropiedad{},
		&parrafo.PlantillaParrafo{},
		&usuario.Usuario{},
	); err != nil {
		sugar.Fatalw("error en AutoMigrate", "error", err)
	}

	// Componentes del pipeline
	registro := persona.NewRegistry()
	orquestador := &pipeline.Orquestador{
		Participantes: participante.NewResolver(registro, sugar),
		Contratos:     contrato.NewRepository(),
		Asignador:     contrato.NewAsignadorNumero(),
		Parrafos:      parrafo.NewResolver(parrafo.NewStore(), sugar),
		Prestamos:     prestamo.NewWriter(sugar),
		Propiedades:   propiedad.NewWriter(sugar),
		Generador: documento.NewGenerador(
			entornoODefecto("DIR_PLANTILLAS", "./plantillas"),
			entornoODefecto("DIR_CONTRATOS", "./contratos_generados"),
			sugar,
		),
		Notificador: notificacion.NewNotificador(sugar),
		Log:         sugar,
	}

	// Handlers
	personaHandler := persona.NewHandler(conexion)
	contratoHandler := contrato.NewHandler(conexion)
	pipelineHandler := pipeline.NewHandler(conexion, orquestador)
	usuarioHandler := usuario.NewHandler(conexion)

	// Router
	r := mux.NewRouter()

	// Autenticación
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.MiddlewareAutenticacion)

	// Pipeline de generación
	api.HandleFunc("/contracts/generate-complete", pipelineHandler.GenerarCompleto).Methods("POST")
	api.HandleFunc("/contracts/validate", pipelineHandler.Validar).Methods("POST")
	api.HandleFunc("/contracts/{id}/regenerate", pipelineHandler.Regenerar).Methods("PUT")

	// Rutas de contratos
	api.HandleFunc("/contratos", contratoHandler.ListarContratos).Methods("GET")
	api.HandleFunc("/contratos/{id}", contratoHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/contratos/numero/{numero}", contratoHandler.BuscarPorNumero).Methods("GET")

	// Rutas de personas
	api.HandleFunc("/personas", personaHandler.ListarPersonas).Methods("GET")
	api.HandleFunc("/personas", personaHandler.CrearPersona).Methods("POST")
	api.HandleFunc("/personas/{id}", personaHandler.BuscarPorID).Methods("GET")

	// Administración de usuarios
	admin := api.PathPrefix("/usuarios").Subrouter()
	admin.Use(auth.RequiereAdmin)
	admin.HandleFunc("", usuarioHandler.CrearUsuario).Methods("POST")

	manejador := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	puerto := entornoODefecto("PUERTO", "8080")
	sugar.Infow("servidor iniciado", "puerto", puerto)
	log.Fatal(http.ListenAndServe(":"+puerto, manejador))
}

func entornoODefecto(clave, defecto string) string {
	if valor := os.Getenv(clave); valor != "" {
		return valor
	}
	return defecto
}
