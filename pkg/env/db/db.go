package db

import (
	"os"
	"strconv"

	"github.com/app-sre/tabqa/pkg/env"
)

const defaultTableQuery = "SELECT * FROM data_series"

type DBEnv struct {
	Driver     DriverType
	Host       string
	Port       int
	Username   string
	Password   string
	Name       string
	TableQuery string
}

func NewDBEnv() *DBEnv {
	return &DBEnv{}
}

func (d *DBEnv) Populate() error {
	driver := DriverType(os.Getenv("DB_DRIVER"))
	if !driver.IsValid() {
		return &env.Error{Name: "DB_DRIVER"}
	}
	d.Driver = driver

	host := os.Getenv("DB_HOST")
	if host == "" {
		return &env.Error{Name: "DB_HOST"}
	}
	d.Host = host

	d.Port = driver.Port()
	if s := os.Getenv("DB_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil || port <= 0 {
			return &env.TypeError{Name: "DB_PORT"}
		}
		d.Port = port
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		return &env.Error{Name: "DB_USER"}
	}
	d.Username = user

	password := os.Getenv("DB_PASS")
	if password == "" {
		return &env.Error{Name: "DB_PASS"}
	}
	d.Password = password

	name := os.Getenv("DB_NAME")
	if name == "" {
		return &env.Error{Name: "DB_NAME"}
	}
	d.Name = name

	d.TableQuery = defaultTableQuery
	if s := os.Getenv("DB_TABLE_QUERY"); s != "" {
		d.TableQuery = s
	}

	return nil
}

func (d *DBEnv) ConnectionDSN() string {
	return d.Driver.DSN(d.Username, d.Password, d.Host, d.Port, d.Name)
}
