package addirectory

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Symantec/keymaster/lib/authutil"
	"github.com/Symantec/sql-login-validation/lib/directory"
	"github.com/Symantec/sql-login-validation/lib/metrics"
	"gopkg.in/ldap.v2"
)

const ldapTimeoutSecs = 10

const (
	attributeObjectSid          = "objectSid"
	attributeUserAccountControl = "userAccountControl"
	attributeSAMAccountName     = "sAMAccountName"

	objectClassUser  = "user"
	objectClassGroup = "group"
)

type ADDirectorySource struct {
	BindUsername   string `yaml:"bind_username"`
	BindPassword   string `yaml:"bind_password"`
	LDAPTargetURLs string `yaml:"ldap_target_urls"`
	SearchBaseDNs  string `yaml:"search_base_dns"`
	RootCAs        *x509.CertPool
}

func getLDAPConnection(u url.URL, timeoutSecs uint, rootCAs *x509.CertPool) (*ldap.Conn, string, error) {

	if u.Scheme != "ldaps" {
		err := errors.New("Invalid ldap scheme (we only support ldaps)")
		log.Println(err)
		return nil, "", err
	}

	serverPort := strings.Split(u.Host, ":")
	port := "636"

	if len(serverPort) == 2 {
		port = serverPort[1]
	}

	server := serverPort[0]
	hostnamePort := server + ":" + port

	timeout := time.Duration(time.Duration(timeoutSecs) * time.Second)
	start := time.Now()

	tlsConn, err := tls.DialWithDialer(&net.Dialer{Timeout: timeout}, "tcp",
		hostnamePort, &tls.Config{ServerName: server, RootCAs: rootCAs})

	if err != nil {
		errorTime := time.Since(start).Seconds() * 1000
		log.Printf("connection failure for:%s (%s)(time(ms)=%v)", server, err.Error(), errorTime)
		return nil, "", err
	}

	// we dont close the tls connection directly, close defers to the new ldap connection
	conn := ldap.NewConn(tlsConn, true)
	return conn, server, nil
}

func (a *ADDirectorySource) getTargetLDAPConnection() (*ldap.Conn, error) {
	var ldapURL []*url.URL
	for _, ldapURLString := range strings.Split(a.LDAPTargetURLs, ",") {
		newURL, err := authutil.ParseLDAPURL(ldapURLString)
		if err != nil {
			log.Println(err)
			continue
		}
		ldapURL = append(ldapURL, newURL)
	}

	for _, targetLdapURL := range ldapURL {
		conn, _, err := getLDAPConnection(*targetLdapURL, ldapTimeoutSecs, a.RootCAs)

		if err != nil {
			log.Println(err)
			continue
		}
		timeout := time.Duration(time.Duration(ldapTimeoutSecs) * time.Second)
		conn.SetTimeout(timeout)
		conn.Start()

		err = conn.Bind(a.BindUsername, a.BindPassword)
		if err != nil {
			log.Println(err)
			continue
		}
		return conn, nil
	}
	return nil, errors.New("cannot connect to LDAP server")
}

// accountName strips the DOMAIN\ qualifier, lookups are done on the
// sAMAccountName within the configured search base.
func accountName(qualifiedName string) string {
	separatorIndex := strings.Index(qualifiedName, "\\")
	if separatorIndex < 0 {
		return qualifiedName
	}
	return qualifiedName[separatorIndex+1:]
}

// LookupPrincipal searches the directory for the account by
// sAMAccountName, scoped to the user or group object class. Users also
// get their userAccountControl value fetched, groups only the objectSid.
func (a *ADDirectorySource) LookupPrincipal(qualifiedName string, kind directory.ObjectKind) (*directory.Object, error) {
	conn, err := a.getTargetLDAPConnection()
	if err != nil {
		log.Println(err)
		return nil, err
	}
	defer conn.Close()

	objectClass := objectClassUser
	attributes := []string{attributeObjectSid, attributeUserAccountControl}
	if kind == directory.KindGroup {
		objectClass = objectClassGroup
		attributes = []string{attributeObjectSid}
	}
	searchFilter := "(&(objectClass=" + objectClass + ")(" + attributeSAMAccountName + "=" +
		ldap.EscapeFilter(accountName(qualifiedName)) + "))"

	searchrequest := ldap.NewSearchRequest(a.SearchBaseDNs, ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases, 0, 0, false, searchFilter, attributes, nil)
	start := time.Now()
	result, err := conn.Search(searchrequest)
	if err != nil {
		log.Println(err)
		return nil, err
	}
	metrics.MetricLogExternalServiceDuration("ldap", time.Since(start))

	if len(result.Entries) == 0 {
		return nil, directory.ObjectDoesNotExist
	}
	if len(result.Entries) > 1 {
		log.Printf("multiple directory entries found for %s", qualifiedName)
		return nil, errors.New("Multiple entries found!")
	}
	entry := result.Entries[0]

	object := directory.Object{SID: entry.GetRawAttributeValue(attributeObjectSid)}
	if kind == directory.KindUser {
		rawControl := entry.GetAttributeValue(attributeUserAccountControl)
		if rawControl != "" {
			value, err := strconv.ParseUint(rawControl, 10, 32)
			if err != nil {
				log.Printf("bad userAccountControl value %q for %s: %s", rawControl, qualifiedName, err)
			} else {
				control := uint32(value)
				object.UserAccountControl = &control
			}
		}
	}
	return &object, nil
}
