package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/luocheng/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	// 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB) error {
	// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
	return db.AutoMigrate(
		&LibrarianModel{},
		&AuthorModel{},
		&BookModel{},
		&BookInstanceModel{},
	)
}

// LibrarianModel GORM馆员模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/librarian/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type LibrarianModel struct {
	ID        string         `gorm:"primaryKey;size:36"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (LibrarianModel) TableName() string {
	return "librarians"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Name      string    `gorm:"index;size:100;not null;comment:作者姓名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 主键使用36字符的UUID字符串,对外暴露不可枚举的ID
// 2. ISBN有唯一索引,防止重复入藏
// 3. AuthorID为外键,Author关联字段供Preload解析作者
//    注意:外键不加数据库级约束,作者行缺失时Preload得到nil(由上层定性为数据缺陷)
type BookModel struct {
	ID        string       `gorm:"primaryKey;size:36"`
	Title     string       `gorm:"index:idx_search;size:200;not null;comment:书名"` // 搜索索引
	Summary   string       `gorm:"type:text;comment:内容简介"`
	ISBN      string       `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	AuthorID  string       `gorm:"index;size:36;not null;comment:作者ID"`
	Author    *AuthorModel `gorm:"foreignKey:AuthorID"` // Preload用,可能为nil
	CreatedAt time.Time    `gorm:"index:idx_list;comment:创建时间"` // 排序索引
	UpdatedAt time.Time    `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// BookInstanceModel GORM馆藏副本模型
// 设计说明:
// 1. 与BookModel是多对一关系(一种图书多个物理副本)
// 2. Status以字符串存储,直接对应领域层状态机取值
// 3. BookID加索引,支持详情页按图书查全部副本
type BookInstanceModel struct {
	ID        string     `gorm:"primaryKey;size:36"`
	BookID    string     `gorm:"index;size:36;not null;comment:所属图书ID"`
	Imprint   string     `gorm:"size:200;not null;comment:版次信息"`
	Status    string     `gorm:"index;size:20;not null;comment:副本状态"`
	DueBack   *time.Time `gorm:"comment:应还日期"`
	CreatedAt time.Time  `gorm:"comment:创建时间"`
	UpdatedAt time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookInstanceModel) TableName() string {
	return "book_instances"
}
