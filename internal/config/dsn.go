package config

import (
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// URIValue assembles the MongoDB connection string, preferring an explicit URI.
func (c MongoConfig) URIValue() string {
	if v := strings.TrimSpace(c.URI); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultMongoHost
	}
	port := c.Port
	if port == 0 {
		port = defaultMongoPort
	}

	u := &neturl.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + c.DatabaseName(),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	if username != "" {
		if password != "" {
			u.User = neturl.UserPassword(username, password)
		} else {
			u.User = neturl.User(username)
		}
	}
	return u.String()
}

// DatabaseName returns the configured database name or the default.
func (c MongoConfig) DatabaseName() string {
	if v := strings.TrimSpace(c.Database); v != "" {
		return v
	}
	return defaultMongoDB
}

// DSNValue assembles the PostgreSQL connection string, preferring an explicit DSN.
func (c PostgresConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultPGHost
	}
	port := c.Port
	if port == 0 {
		port = defaultPGPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultPGUser
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultPGName
	}
	sslMode := strings.TrimSpace(c.SSLMode)
	if sslMode == "" {
		sslMode = "prefer"
	}

	u := &neturl.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + name,
	}
	password := strings.TrimSpace(c.Password)
	if password != "" {
		u.User = neturl.UserPassword(user, password)
	} else {
		u.User = neturl.User(user)
	}
	query := neturl.Values{}
	query.Set("sslmode", sslMode)
	u.RawQuery = query.Encode()
	return u.String()
}

// URLValue assembles the Redis connection URL, preferring an explicit URL.
func (c RedisConfig) URLValue() string {
	if v := strings.TrimSpace(c.URL); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultRedisHost
	}
	port := c.Port
	if port == 0 {
		port = defaultRedisPort
	}
	db := c.DB
	if db < 0 {
		db = defaultRedisDB
	}

	scheme := "redis"
	if c.TLS {
		scheme = "rediss"
	}

	u := &neturl.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + strconv.Itoa(db),
	}
	username := strings.TrimSpace(c.Username)
	password := strings.TrimSpace(c.Password)
	if username != "" {
		if password != "" {
			u.User = neturl.UserPassword(username, password)
		} else {
			u.User = neturl.User(username)
		}
	} else if password != "" {
		u.User = neturl.UserPassword("", password)
	}
	return u.String()
}
