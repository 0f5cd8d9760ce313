package usuario

import "gorm.io/gorm"

type Repository interface {
	Crear(db *gorm.DB, usuario *Usuario) error
	BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Usuario, error)
	Guardar(db *gorm.DB, usuario *Usuario) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Crear(db *gorm.DB, usuario *Usuario) error {
	return db.Create(usuario).Error
}

func (r *repositoryImpl) BuscarPorEmail(db *gorm.DB, email string) (*Usuario, error) {
	var usuario Usuario
	if err := db.Where("email = ? AND activo = ?", email, true).First(&usuario).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Usuario, error) {
	var usuario Usuario
	if err := db.First(&usuario, id).Error; err != nil {
		return nil, err
	}
	return &usuario, nil
}

func (r *repositoryImpl) Guardar(db *gorm.DB, usuario *Usuario) error {
	return db.Save(usuario).Error
}
